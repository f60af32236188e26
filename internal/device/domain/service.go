package domain

import (
	"context"
	"errors"
)

type CreateDeviceRequest struct {
	Owner        string
	ContentID    string
	Category     int32
	PricePerHour int64
}

type ModifyDeviceRequest struct {
	DeviceID     int64
	Caller       string
	PricePerHour int64
	Active       bool
}

// OwnerInfo is the aggregate view of one device owner: running totals
// plus the owned device ids in creation order.
type OwnerInfo struct {
	Account        string  `json:"account"`
	TotalEarned    int64   `json:"total_earned"`
	TotalWithdrawn int64   `json:"total_withdrawn"`
	DeviceIDs      []int64 `json:"device_ids"`
}

type Service interface {
	Create(ctx context.Context, req CreateDeviceRequest) (Device, error)
	Modify(ctx context.Context, req ModifyDeviceRequest) error
	Get(ctx context.Context, id int64) (Device, error)
	ListIDs(ctx context.Context) ([]int64, error)
	OwnerInfo(ctx context.Context, account string) (OwnerInfo, error)
}

var (
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidOwner        = errors.New("invalid_owner")
	ErrNotOwner            = errors.New("not_owner")
	ErrNotFound            = errors.New("device_not_found")
	ErrInsufficientBalance = errors.New("insufficient_balance")
)
