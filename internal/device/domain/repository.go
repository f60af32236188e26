package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, device *Device) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Device, error)
	ListIDs(ctx context.Context, db *gorm.DB) ([]int64, error)
	UpdatePriceActive(ctx context.Context, db *gorm.DB, id int64, pricePerHour int64, active bool) error
	SetCurrentOrder(ctx context.Context, db *gorm.DB, id, orderID int64) error

	EnsureOwner(ctx context.Context, db *gorm.DB, account string) error
	FindOwner(ctx context.Context, db *gorm.DB, account string) (*OwnerAccount, error)
	OwnerDeviceIDs(ctx context.Context, db *gorm.DB, account string) ([]int64, error)
	CreditOwner(ctx context.Context, db *gorm.DB, account string, amount int64) error
	// WithdrawOwner bumps total_withdrawn, refusing to exceed the
	// available balance. Returns ErrInsufficientBalance when short.
	WithdrawOwner(ctx context.Context, db *gorm.DB, account string, amount int64) error
}
