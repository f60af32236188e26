package repository

import (
	"context"

	"github.com/smallbiznis/derent/internal/rental/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO orders (id, device_id, amount_paid, start_timestamp, end_timestamp, renter, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.DeviceID,
		order.AmountPaid,
		order.StartTimestamp,
		order.EndTimestamp,
		order.Renter,
		order.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, device_id, amount_paid, start_timestamp, end_timestamp, renter, created_at
		 FROM orders WHERE id = ?`,
		id,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) ListByRenter(ctx context.Context, db *gorm.DB, account string) ([]domain.Order, error) {
	var orders []domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, device_id, amount_paid, start_timestamp, end_timestamp, renter, created_at
		 FROM orders WHERE renter = ? ORDER BY id`,
		account,
	).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) EnsureUser(ctx context.Context, db *gorm.DB, account string) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO user_accounts (account, total_spent, created_at, updated_at)
		 VALUES (?, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT (account) DO NOTHING`,
		account,
	).Error
}

func (r *repo) FindUser(ctx context.Context, db *gorm.DB, account string) (*domain.UserAccount, error) {
	var user domain.UserAccount
	err := db.WithContext(ctx).Raw(
		`SELECT account, total_spent, created_at, updated_at
		 FROM user_accounts WHERE account = ?`,
		account,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.Account == "" {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) AddUserSpent(ctx context.Context, db *gorm.DB, account string, amount int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE user_accounts
		 SET total_spent = total_spent + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE account = ?`,
		amount,
		account,
	).Error
}
