package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject   string  `json:"subject"`
	Message   string  `json:"message"`
	IssueType string  `json:"issueType"`
	OrderID   *string `json:"orderId"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status   domain.TicketStatus `json:"status"`
	Solution *string             `json:"solution"`
}

// TicketResponse is the ticket representation for all panels.
type TicketResponse struct {
	ID            string               `json:"id"`
	RequesterID   string               `json:"userId"`
	RequesterKind domain.RequesterKind `json:"userType"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Subject       string               `json:"subject"`
	Message       string               `json:"message"`
	IssueType     string               `json:"issueType"`
	Status        domain.TicketStatus  `json:"status"`
	Solution      *string              `json:"solution,omitempty"`
	OrderID       *string              `json:"orderId"`
	Order         *OrderResponse       `json:"order,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}
