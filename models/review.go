package models

import (
	"time"
)

// Review is a buyer review of a product, tied to the payment the buyer
// made for it.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StripeID   uint      `json:"stripe_id" gorm:"not null"`
	ClientID   uint      `json:"client_id" gorm:"index"`
	Client     User      `json:"-" gorm:"foreignKey:ClientID"`
	ProductID  uint      `json:"product_id" gorm:"index"`
	ClientRate float64   `json:"client_rate" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
