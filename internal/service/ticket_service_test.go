package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

type fakeTicketRepo struct {
	tickets     map[string]*domain.Ticket
	created     []*domain.Ticket
	listedKinds []domain.RequesterKind
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = "ticket-" + strconv.Itoa(len(f.created)+1)
	f.created = append(f.created, ticket)
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) ListByRequester(_ context.Context, requesterID string, kind domain.RequesterKind) ([]domain.TicketWithOrder, error) {
	f.listedKinds = append(f.listedKinds, kind)
	var result []domain.TicketWithOrder
	for _, ticket := range f.created {
		if ticket.RequesterID == requesterID && ticket.RequesterKind == kind {
			result = append(result, domain.TicketWithOrder{Ticket: *ticket})
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range f.created {
		result = append(result, *ticket)
	}
	return result, nil
}

func (f *fakeTicketRepo) UpdateResolution(_ context.Context, id string, status domain.TicketStatus, solution *string) error {
	ticket, ok := f.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.Solution = solution
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

func requester() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Name:  "Asha Verma",
		Email: "asha@example.com",
		Phone: "5550100",
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	repo := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(TicketDependencies{TicketRepo: repo, Dispatcher: dispatcher})

	ticket, err := svc.CreateTicket(context.Background(), requester(), TicketCreateInput{
		Subject:   "  Cleaner never arrived  ",
		Message:   "Waited two hours.",
		IssueType: "service",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.RequesterKindUser, ticket.RequesterKind)
	assert.Equal(t, "Cleaner never arrived", ticket.Subject)
	// Contact fields fall back to the requester profile.
	assert.Equal(t, "Asha Verma", ticket.Name)
	assert.Equal(t, "asha@example.com", ticket.Email)
	assert.Equal(t, "5550100", ticket.Phone)
	assert.Nil(t, ticket.OrderID)
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, dispatcher.published[0].Type)
}

func TestCreateTicketKeepsOverrides(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(TicketDependencies{TicketRepo: repo})

	orderID := "order-9"
	ticket, err := svc.CreateTicket(context.Background(), requester(), TicketCreateInput{
		Subject: "Reschedule",
		Message: "Need a later slot",
		Name:    "A. Verma",
		Phone:   "5550199",
		OrderID: &orderID,
	})
	require.NoError(t, err)

	assert.Equal(t, "A. Verma", ticket.Name)
	assert.Equal(t, "5550199", ticket.Phone)
	require.NotNil(t, ticket.OrderID)
	assert.Equal(t, orderID, *ticket.OrderID)
}

func TestUpdateStatusMissingTicket(t *testing.T) {
	svc := NewTicketService(TicketDependencies{TicketRepo: newFakeTicketRepo()})

	err := svc.UpdateStatus(context.Background(), "staff-1", "missing", domain.TicketStatusSolved, nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestUpdateStatusPersistsSolution(t *testing.T) {
	repo := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(TicketDependencies{TicketRepo: repo, Dispatcher: dispatcher})

	ticket, err := svc.CreateTicket(context.Background(), requester(), TicketCreateInput{
		Subject: "Broken lock",
		Message: "Door lock damaged during visit",
	})
	require.NoError(t, err)

	solution := "Replacement arranged"
	require.NoError(t, svc.UpdateStatus(context.Background(), "staff-1", ticket.ID, domain.TicketStatusSolved, &solution))

	stored := repo.tickets[ticket.ID]
	assert.Equal(t, domain.TicketStatusSolved, stored.Status)
	require.NotNil(t, stored.Solution)
	assert.Equal(t, solution, *stored.Solution)

	require.Len(t, dispatcher.published, 2)
	resolved := dispatcher.published[1]
	assert.Equal(t, events.EventTicketResolved, resolved.Type)
	payload, ok := resolved.Payload.(events.TicketResolvedPayload)
	require.True(t, ok)
	assert.True(t, payload.HasSolution)
}

func TestGetTicketsByRequesterRequiresKind(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(TicketDependencies{TicketRepo: repo})

	_, err := svc.GetTicketsByRequester(context.Background(), "user-1", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	// Validation fires before any storage access.
	assert.Empty(t, repo.listedKinds)
}

func TestGetTicketsByRequesterFiltersKind(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(TicketDependencies{TicketRepo: repo})

	_, err := svc.CreateTicket(context.Background(), requester(), TicketCreateInput{
		Subject: "Billing",
		Message: "Charged twice",
	})
	require.NoError(t, err)

	tickets, err := svc.GetTicketsByRequester(context.Background(), "user-1", domain.RequesterKindUser)
	require.NoError(t, err)
	assert.Len(t, tickets, 1)

	partnerTickets, err := svc.GetTicketsByRequester(context.Background(), "user-1", domain.RequesterKindPartner)
	require.NoError(t, err)
	assert.Empty(t, partnerTickets)
}

func TestDeleteTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(TicketDependencies{TicketRepo: repo})

	ticket, err := svc.CreateTicket(context.Background(), requester(), TicketCreateInput{
		Subject: "Spam",
		Message: "duplicate",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTicket(context.Background(), ticket.ID))

	err = svc.DeleteTicket(context.Background(), ticket.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
