package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	// ListByRenter returns a renter's orders in placement order.
	ListByRenter(ctx context.Context, db *gorm.DB, account string) ([]Order, error)

	EnsureUser(ctx context.Context, db *gorm.DB, account string) error
	FindUser(ctx context.Context, db *gorm.DB, account string) (*UserAccount, error)
	AddUserSpent(ctx context.Context, db *gorm.DB, account string, amount int64) error
}
