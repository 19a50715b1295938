package models

import (
	"strconv"
	"strings"
	"time"
)

// StripePay records a completed Stripe payment. Product ids and
// quantities are stored as comma-separated lists, matching the wire
// format the front-end sends at checkout.
type StripePay struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	StripePaymentID   string    `json:"stripe_payment_id" gorm:"not null"`
	UserID            uint      `json:"user_id" gorm:"not null;index"`
	User              User      `json:"-" gorm:"foreignKey:UserID"`
	ProductIDs        string    `json:"-" gorm:"not null"`
	ProductQuantities string    `json:"-" gorm:"not null"`
	Amount            float64   `json:"amount" gorm:"not null"`
	Currency          string    `json:"currency" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProductIDList splits the stored product id list.
func (p *StripePay) ProductIDList() []string {
	if p.ProductIDs == "" {
		return []string{}
	}
	return strings.Split(p.ProductIDs, ",")
}

// QuantityList splits the stored quantity list. Entries that fail to
// parse count as zero.
func (p *StripePay) QuantityList() []int {
	if p.ProductQuantities == "" {
		return []int{}
	}
	parts := strings.Split(p.ProductQuantities, ",")
	quantities := make([]int, 0, len(parts))
	for _, part := range parts {
		n, _ := strconv.Atoi(strings.TrimSpace(part))
		quantities = append(quantities, n)
	}
	return quantities
}
