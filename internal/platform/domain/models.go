package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PlatformState is the singleton bookkeeping row shared by the registry
// and the rental ledger. Device and order ids are dense sequences owned
// by this row; fee and raised totals accumulate here.
type PlatformState struct {
	ID            int64     `gorm:"primaryKey" json:"-"`
	LastDeviceID  int64     `gorm:"not null" json:"last_device_id"`
	LastOrderID   int64     `gorm:"not null" json:"last_order_id"`
	FeeBps        int64     `gorm:"not null" json:"fee_bps"`
	TotalRaised   int64     `gorm:"not null" json:"total_raised"`
	AvailableFees int64     `gorm:"not null" json:"available_fees"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (PlatformState) TableName() string { return "platform_state" }

// StateID is the fixed primary key of the singleton row.
const StateID int64 = 1

type Repository interface {
	Get(ctx context.Context, db *gorm.DB) (*PlatformState, error)
	NextDeviceID(ctx context.Context, db *gorm.DB) (int64, error)
	NextOrderID(ctx context.Context, db *gorm.DB) (int64, error)
	SetFee(ctx context.Context, db *gorm.DB, feeBps int64) error
	AccrueRental(ctx context.Context, db *gorm.DB, ownerCredit, feeAmount int64) error
	TakeFees(ctx context.Context, db *gorm.DB, amount int64) error
}

var (
	ErrNotInitialized      = errors.New("platform_state_not_initialized")
	ErrInsufficientFees    = errors.New("insufficient_fees")
	ErrInvalidFee          = errors.New("invalid_fee")
	ErrInvalidAccrualParts = errors.New("invalid_accrual_parts")
)
