package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// TicketService coordinates the support workflow.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject   string
	Message   string
	IssueType string
	OrderID   *string
	Name      string
	Phone     string
}

// CreateTicket opens a ticket for a customer. Contact fields are denormalized
// from the caller identity so support sees them without a second lookup.
func (s *TicketService) CreateTicket(ctx context.Context, requester *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("authenticated requester required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = requester.Name
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		phone = requester.Phone
	}

	ticket := &domain.Ticket{
		RequesterID:   requester.ID,
		RequesterKind: domain.RequesterKindUser,
		Name:          name,
		Email:         requester.Email,
		Phone:         phone,
		Subject:       strings.TrimSpace(input.Subject),
		Message:       strings.TrimSpace(input.Message),
		IssueType:     input.IssueType,
		Status:        domain.TicketStatusOpen,
		OrderID:       input.OrderID,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: ticket.ID,
		Actor:    customerActor(requester.ID),
		Payload: events.TicketCreatedPayload{
			Subject:   ticket.Subject,
			IssueType: ticket.IssueType,
			OrderID:   ticket.OrderID,
		},
	})
	return ticket, nil
}

// GetMyTickets returns the caller's tickets with associated orders resolved.
func (s *TicketService) GetMyTickets(ctx context.Context, requester *domain.User) ([]domain.TicketWithOrder, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("authenticated requester required")
	}
	return s.tickets.ListByRequester(ctx, requester.ID, domain.RequesterKindUser)
}

// GetAllTickets returns every ticket, newest first.
func (s *TicketService) GetAllTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ListAll(ctx)
}

// GetTicket fetches one ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}
	return ticket, nil
}

// UpdateStatus overwrites status and solution. Status values outside the
// schema enum are rejected by the database, not here. Updating a missing
// ticket fails with NotFound.
func (s *TicketService) UpdateStatus(ctx context.Context, staffID, ticketID string, status domain.TicketStatus, solution *string) error {
	if err := s.tickets.UpdateResolution(ctx, ticketID, status, solution); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResolved,
		EntityID: ticketID,
		Actor:    staffActor(staffID),
		Payload: events.TicketResolvedPayload{
			Status:      status,
			HasSolution: solution != nil && *solution != "",
		},
	})
	return nil
}

// DeleteTicket removes a ticket. Administrative use only.
func (s *TicketService) DeleteTicket(ctx context.Context, ticketID string) error {
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return err
	}
	return nil
}

// GetTicketsByRequester lists tickets for one requester, newest first. The
// kind discriminator is mandatory and checked before any storage access.
func (s *TicketService) GetTicketsByRequester(ctx context.Context, requesterID string, kind domain.RequesterKind) ([]domain.TicketWithOrder, error) {
	if kind == "" {
		return nil, apperrors.NewValidationError("userType is required", nil)
	}
	return s.tickets.ListByRequester(ctx, requesterID, kind)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
