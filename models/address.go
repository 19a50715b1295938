package models

import (
	"time"
)

// Address is a shipping address. For every user with at least one
// address, exactly one row carries is_default = true; the controllers
// maintain that inside a single transaction and a partial unique index
// on (user_id) WHERE is_default backs it up at the schema level.
type Address struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Street     string    `json:"street" gorm:"not null"`
	Number     string    `json:"number" gorm:"not null"`
	Apartment  string    `json:"apartment"`
	City       string    `json:"city" gorm:"not null"`
	Province   string    `json:"province" gorm:"not null"`
	PostalCode string    `json:"postal_code" gorm:"not null"`
	Country    string    `json:"country" gorm:"not null;default:'España'"`
	Phone      string    `json:"phone"`
	IsDefault  bool      `json:"is_default" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
