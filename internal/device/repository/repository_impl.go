package repository

import (
	"context"

	"github.com/smallbiznis/derent/internal/device/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, device *domain.Device) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO devices (id, owner, content_id, category, price_per_hour, current_order_id, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		device.ID,
		device.Owner,
		device.ContentID,
		device.Category,
		device.PricePerHour,
		device.CurrentOrderID,
		device.Active,
		device.CreatedAt,
		device.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Device, error) {
	var device domain.Device
	err := db.WithContext(ctx).Raw(
		`SELECT id, owner, content_id, category, price_per_hour, current_order_id, active, created_at, updated_at
		 FROM devices WHERE id = ?`,
		id,
	).Scan(&device).Error
	if err != nil {
		return nil, err
	}
	if device.ID == 0 {
		return nil, nil
	}
	return &device, nil
}

func (r *repo) ListIDs(ctx context.Context, db *gorm.DB) ([]int64, error) {
	var ids []int64
	err := db.WithContext(ctx).Raw(
		`SELECT id FROM devices ORDER BY id`,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) UpdatePriceActive(ctx context.Context, db *gorm.DB, id int64, pricePerHour int64, active bool) error {
	return db.WithContext(ctx).Exec(
		`UPDATE devices SET price_per_hour = ?, active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		pricePerHour,
		active,
		id,
	).Error
}

func (r *repo) SetCurrentOrder(ctx context.Context, db *gorm.DB, id, orderID int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE devices SET current_order_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		orderID,
		id,
	).Error
}

func (r *repo) EnsureOwner(ctx context.Context, db *gorm.DB, account string) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO owner_accounts (account, total_earned, total_withdrawn, created_at, updated_at)
		 VALUES (?, 0, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT (account) DO NOTHING`,
		account,
	).Error
}

func (r *repo) FindOwner(ctx context.Context, db *gorm.DB, account string) (*domain.OwnerAccount, error) {
	var owner domain.OwnerAccount
	err := db.WithContext(ctx).Raw(
		`SELECT account, total_earned, total_withdrawn, created_at, updated_at
		 FROM owner_accounts WHERE account = ?`,
		account,
	).Scan(&owner).Error
	if err != nil {
		return nil, err
	}
	if owner.Account == "" {
		return nil, nil
	}
	return &owner, nil
}

func (r *repo) OwnerDeviceIDs(ctx context.Context, db *gorm.DB, account string) ([]int64, error) {
	var ids []int64
	err := db.WithContext(ctx).Raw(
		`SELECT id FROM devices WHERE owner = ? ORDER BY id`,
		account,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) CreditOwner(ctx context.Context, db *gorm.DB, account string, amount int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE owner_accounts
		 SET total_earned = total_earned + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE account = ?`,
		amount,
		account,
	).Error
}

func (r *repo) WithdrawOwner(ctx context.Context, db *gorm.DB, account string, amount int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE owner_accounts
		 SET total_withdrawn = total_withdrawn + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE account = ? AND total_earned - total_withdrawn >= ?`,
		amount,
		account,
		amount,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}
