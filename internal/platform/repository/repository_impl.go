package repository

import (
	"context"

	"github.com/smallbiznis/derent/internal/platform/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Get(ctx context.Context, db *gorm.DB) (*domain.PlatformState, error) {
	var state domain.PlatformState
	err := db.WithContext(ctx).Raw(
		`SELECT id, last_device_id, last_order_id, fee_bps, total_raised, available_fees, updated_at
		 FROM platform_state WHERE id = ?`,
		domain.StateID,
	).Scan(&state).Error
	if err != nil {
		return nil, err
	}
	if state.ID == 0 {
		return nil, domain.ErrNotInitialized
	}
	return &state, nil
}

func (r *repo) NextDeviceID(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.bump(ctx, db, "last_device_id")
}

func (r *repo) NextOrderID(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.bump(ctx, db, "last_order_id")
}

// bump advances a dense sequence column and returns the new value. The
// increment and the read run against the caller's transaction, so ids
// are never observed before the surrounding operation commits.
func (r *repo) bump(ctx context.Context, db *gorm.DB, column string) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE platform_state SET `+column+` = `+column+` + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		domain.StateID,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, domain.ErrNotInitialized
	}

	var id int64
	if err := db.WithContext(ctx).Raw(
		`SELECT `+column+` FROM platform_state WHERE id = ?`,
		domain.StateID,
	).Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) SetFee(ctx context.Context, db *gorm.DB, feeBps int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE platform_state SET fee_bps = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		feeBps,
		domain.StateID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotInitialized
	}
	return nil
}

func (r *repo) AccrueRental(ctx context.Context, db *gorm.DB, ownerCredit, feeAmount int64) error {
	if ownerCredit < 0 || feeAmount < 0 {
		return domain.ErrInvalidAccrualParts
	}
	result := db.WithContext(ctx).Exec(
		`UPDATE platform_state
		 SET total_raised = total_raised + ?, available_fees = available_fees + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		ownerCredit,
		feeAmount,
		domain.StateID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotInitialized
	}
	return nil
}

func (r *repo) TakeFees(ctx context.Context, db *gorm.DB, amount int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE platform_state
		 SET available_fees = available_fees - ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND available_fees >= ?`,
		amount,
		domain.StateID,
		amount,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientFees
	}
	return nil
}
