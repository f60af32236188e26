package domain

import "time"

// Order records one completed rental transaction. Orders are immutable
// once written; there is no cancellation or modification surface.
type Order struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	DeviceID       int64     `gorm:"not null;index" json:"device_id"`
	AmountPaid     int64     `gorm:"not null" json:"amount_paid"`
	StartTimestamp int64     `gorm:"not null" json:"start_timestamp"`
	EndTimestamp   int64     `gorm:"not null" json:"end_timestamp"`
	Renter         string    `gorm:"not null;index" json:"renter"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// UserAccount keeps the running spend total for one renter. The order
// sequence itself lives in the orders table, keyed by renter.
type UserAccount struct {
	Account    string    `gorm:"primaryKey" json:"account"`
	TotalSpent int64     `gorm:"not null" json:"total_spent"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (UserAccount) TableName() string { return "user_accounts" }
