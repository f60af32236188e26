package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CustodyAccount holds funds paid in by renters until owners or the
// platform withdraw them.
const CustodyAccount = "derent:custody"

// TokenAccount is one balance row of the fungible-token ledger.
type TokenAccount struct {
	Account   string    `gorm:"primaryKey" json:"account"`
	Balance   int64     `gorm:"not null" json:"balance"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TokenAccount) TableName() string { return "token_accounts" }

// Ledger is the external fungible-token collaborator. Movements run
// against the caller's transaction handle so a failed transfer aborts
// the enclosing operation as a unit.
type Ledger interface {
	// TransferFrom pulls funds from a renter into custody.
	TransferFrom(ctx context.Context, db *gorm.DB, from, to string, amount int64) error
	// Transfer pushes funds out of custody during withdrawal.
	Transfer(ctx context.Context, db *gorm.DB, to string, amount int64) error
	BalanceOf(ctx context.Context, db *gorm.DB, account string) (int64, error)
}

var (
	ErrTransferFailed = errors.New("transfer_failed")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidAccount = errors.New("invalid_account")
)
