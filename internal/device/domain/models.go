package domain

import "time"

// Device is one rentable IoT device. ContentID, Category and Owner are
// fixed at creation; only the hourly price and the active flag move
// through the modify surface.
type Device struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	Owner          string    `gorm:"not null;index" json:"owner"`
	ContentID      string    `gorm:"not null" json:"content_id"`
	Category       int32     `gorm:"not null" json:"category"`
	PricePerHour   int64     `gorm:"not null" json:"price_per_hour"`
	CurrentOrderID int64     `gorm:"not null" json:"current_order_id"`
	Active         bool      `gorm:"not null" json:"active"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Device) TableName() string { return "devices" }

// NoOrder is the CurrentOrderID sentinel for a device that is not
// currently rented.
const NoOrder int64 = 0

// OwnerAccount keeps the running earnings totals for one device owner.
// Totals only ever grow; available balance is TotalEarned minus
// TotalWithdrawn.
type OwnerAccount struct {
	Account        string    `gorm:"primaryKey" json:"account"`
	TotalEarned    int64     `gorm:"not null" json:"total_earned"`
	TotalWithdrawn int64     `gorm:"not null" json:"total_withdrawn"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (OwnerAccount) TableName() string { return "owner_accounts" }
