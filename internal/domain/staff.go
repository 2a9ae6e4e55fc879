package domain

import "time"

// StaffRole enumerates back-office operator roles.
type StaffRole string

const (
	StaffRoleAdmin      StaffRole = "ADMIN"
	StaffRoleCallCentre StaffRole = "CALL_CENTRE"
)

// StaffMember models an administrator or a call-centre operator. Both share
// the same table; their tokens are signed with per-role secrets.
type StaffMember struct {
	ID           string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
