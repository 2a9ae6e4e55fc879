package domain

import "time"

// UserStatus represents lifecycle states for a customer account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for customers of the storefront.
type User struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	PasswordHash     string
	PoliciesAccepted bool
	Status           UserStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SavedAddress is one address a customer keeps on file for checkout.
type SavedAddress struct {
	ID          string
	UserID      string
	HouseNo     string
	Street      string
	Landmark    string
	AddressType string
	FullAddress string
	CreatedAt   time.Time
}
