package domain

import (
	"time"

	"github.com/google/uuid"
)

// Currency is one of the fixed set of supported currency codes
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
)

// Currencies lists every supported currency code
var Currencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyINR}

// ValidCurrency reports whether c is a supported currency code
func ValidCurrency(c Currency) bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

// User represents a registered user
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Currency     Currency   `json:"currency"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
}

// UpdateUserData holds the mutable profile fields
type UpdateUserData struct {
	Name     *string
	Currency *Currency
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(user *User) (*User, error)
	GetByID(id uuid.UUID) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(id uuid.UUID, data *UpdateUserData) (*User, error)
	UpdateLastLogin(id uuid.UUID, at time.Time) error
	SoftDelete(id uuid.UUID) error
}
