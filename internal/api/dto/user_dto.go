package dto

import "time"

// UserRegisterRequest payload.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UserLoginRequest payload.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffLoginRequest payload for admin and call-centre logins.
type StaffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UpdateProfileRequest payload.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SaveAddressRequest payload.
type SaveAddressRequest struct {
	HouseNo     string `json:"houseNo"`
	Street      string `json:"street"`
	Landmark    string `json:"landmark"`
	AddressType string `json:"addressType"`
	FullAddress string `json:"fullAddress"`
}

// UserResponse is the profile representation.
type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	PoliciesAccepted bool      `json:"policiesAccepted"`
	CreatedAt        time.Time `json:"createdAt"`
}

// AddressResponse is one saved address.
type AddressResponse struct {
	ID          string    `json:"id"`
	HouseNo     string    `json:"houseNo"`
	Street      string    `json:"street"`
	Landmark    string    `json:"landmark,omitempty"`
	AddressType string    `json:"addressType,omitempty"`
	FullAddress string    `json:"fullAddress"`
	CreatedAt   time.Time `json:"createdAt"`
}
