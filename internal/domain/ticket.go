package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "open"
	TicketStatusSolved TicketStatus = "solved"
)

// RequesterKind discriminates the polymorphic ticket owner.
type RequesterKind string

const (
	RequesterKindUser    RequesterKind = "User"
	RequesterKindPartner RequesterKind = "Partner"
)

// Ticket is a support request, optionally linked to an order. Contact fields
// are denormalized from the requester at creation time.
type Ticket struct {
	ID            string
	RequesterID   string
	RequesterKind RequesterKind
	Name          string
	Email         string
	Phone         string
	Subject       string
	Message       string
	IssueType     string
	Status        TicketStatus
	Solution      *string
	OrderID       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TicketWithOrder pairs a ticket with its associated order resolved at read
// time. Order is nil when the ticket has no order reference.
type TicketWithOrder struct {
	Ticket
	Order *Order
}
