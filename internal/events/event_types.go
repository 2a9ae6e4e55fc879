package events

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderPlaced          EventType = "order_placed"
	EventOrderCancelled       EventType = "order_cancelled"
	EventOrderTimeSlotChanged EventType = "order_timeslot_changed"
	EventTicketCreated        EventType = "ticket_created"
	EventTicketResolved       EventType = "ticket_resolved"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type    domain.SubjectType `json:"type"`
	UserID  *string            `json:"user_id,omitempty"`
	StaffID *string            `json:"staff_id,omitempty"`
}

// Event represents a domain event emitted by services. EntityID holds the id
// of the order or ticket the event is about.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	Status      domain.OrderStatus `json:"status"`
	PaymentType domain.PaymentType `json:"payment_type"`
	TotalAmount float64            `json:"total_amount"`
}

// OrderCancelledPayload payload.
type OrderCancelledPayload struct {
	PreviousStatus domain.OrderStatus `json:"previous_status"`
}

// OrderTimeSlotChangedPayload payload.
type OrderTimeSlotChangedPayload struct {
	TimeSlot string `json:"time_slot"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Subject   string  `json:"subject"`
	IssueType string  `json:"issue_type"`
	OrderID   *string `json:"order_id,omitempty"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	Status      domain.TicketStatus `json:"status"`
	HasSolution bool                `json:"has_solution"`
}
