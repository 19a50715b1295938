package models

import (
	"time"
)

// Role names a user role variant. Role checks must match on these
// constants, never on a raw rol id.
type Role string

const (
	RoleClient Role = "client"
	RoleSeller Role = "seller"
)

// Valid reports whether r is a known role variant.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleSeller:
		return true
	}
	return false
}

// Rol is a role row. The table is seeded with one row per Role variant.
type Rol struct {
	ID   uint `json:"id" gorm:"primaryKey"`
	Type Role `json:"type" gorm:"uniqueIndex;not null"`
}

// User represents an account in the system
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserName  string    `json:"user_name" gorm:"uniqueIndex;not null"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	RolID     uint      `json:"rol_id"`
	Rol       Rol       `json:"rol" gorm:"foreignKey:RolID"`
	Img       string    `json:"img"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
}

// IsSeller reports whether the user holds the seller role.
func (u *User) IsSeller() bool {
	return u.Rol.Type == RoleSeller
}
