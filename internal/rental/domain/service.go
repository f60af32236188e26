package domain

import (
	"context"
	"errors"
)

// FeeDenominator converts basis points to a fraction: 10000 bps = 100%.
const FeeDenominator int64 = 10000

// MaxPayment bounds a single payment so that bps fee math cannot
// overflow int64.
const MaxPayment = int64(^uint64(0)>>1) / FeeDenominator

// SplitFee computes the protocol fee and the owner credit for one
// payment. Division truncates, so rounding never favors the renter and
// the split is bit-exact and reproducible.
func SplitFee(payment, feeBps int64) (feeAmount, ownerCredit int64) {
	feeAmount = payment * feeBps / FeeDenominator
	ownerCredit = payment - feeAmount
	return feeAmount, ownerCredit
}

type RentRequest struct {
	DeviceID int64
	// Renter is the account the payment is pulled from and the order is
	// recorded against.
	Renter  string
	Payment int64
	// DurationSeconds selects the rental window; zero selects the
	// configured default (one hour).
	DurationSeconds int64
	Caller          string
}

type WithdrawRequest struct {
	Caller      string
	Destination string
	Amount      int64
}

type TakeFeeRequest struct {
	Caller      string
	Destination string
	Amount      int64
}

// UserInfo is the aggregate view of one renter: cumulative spend plus
// the full order records in placement order.
type UserInfo struct {
	Account    string  `json:"account"`
	TotalSpent int64   `json:"total_spent"`
	Orders     []Order `json:"orders"`
}

// PlatformInfo is the platform-level read surface.
type PlatformInfo struct {
	LastOrderID   int64 `json:"last_order_id"`
	FeeBps        int64 `json:"fee_bps"`
	TotalRaised   int64 `json:"total_raised"`
	AvailableFees int64 `json:"available_fees"`
}

type Service interface {
	Rent(ctx context.Context, req RentRequest) (Order, error)
	Withdraw(ctx context.Context, req WithdrawRequest) error
	SetFee(ctx context.Context, caller string, feeBps int64) error
	TakeFee(ctx context.Context, req TakeFeeRequest) error

	GetOrder(ctx context.Context, id int64) (Order, error)
	UserInfo(ctx context.Context, account string) (UserInfo, error)
	LatestOrderID(ctx context.Context) (int64, error)
	Platform(ctx context.Context) (PlatformInfo, error)
}

var (
	ErrDeviceInactive      = errors.New("device_inactive")
	ErrZeroPayment         = errors.New("zero_payment")
	ErrAmountTooLarge      = errors.New("amount_too_large")
	ErrInvalidDuration     = errors.New("invalid_duration")
	ErrInvalidRenter       = errors.New("invalid_renter")
	ErrInvalidDestination  = errors.New("invalid_destination")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInsufficientBalance = errors.New("insufficient_balance")
	ErrNotAdmin            = errors.New("not_admin")
	ErrInvalidFee          = errors.New("invalid_fee")
	ErrOrderNotFound       = errors.New("order_not_found")
)
