package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Listings are newest
// first with the insertion sequence as deterministic tie-break.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByRequester(ctx context.Context, requesterID string, kind domain.RequesterKind) ([]domain.TicketWithOrder, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	UpdateResolution(ctx context.Context, id string, status domain.TicketStatus, solution *string) error
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, requester_id, requester_kind, name, email, phone, subject, message,
               issue_type, status, solution, order_id, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (requester_id, requester_kind, name, email, phone, subject, message,
                             issue_type, status, solution, order_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.RequesterID,
		ticket.RequesterKind,
		ticket.Name,
		ticket.Email,
		ticket.Phone,
		ticket.Subject,
		ticket.Message,
		ticket.IssueType,
		ticket.Status,
		ticket.Solution,
		ticket.OrderID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.RequesterID,
		&ticket.RequesterKind,
		&ticket.Name,
		&ticket.Email,
		&ticket.Phone,
		&ticket.Subject,
		&ticket.Message,
		&ticket.IssueType,
		&ticket.Status,
		&ticket.Solution,
		&ticket.OrderID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListByRequester resolves each ticket's associated order in the same query.
// Tickets without an order reference carry a nil Order.
func (r *ticketRepository) ListByRequester(ctx context.Context, requesterID string, kind domain.RequesterKind) ([]domain.TicketWithOrder, error) {
	const query = `
        SELECT t.id, t.requester_id, t.requester_kind, t.name, t.email, t.phone, t.subject,
               t.message, t.issue_type, t.status, t.solution, t.order_id, t.created_at, t.updated_at,
               o.id, o.user_id, o.items, o.total_amount, o.address, o.status, o.request_status,
               o.payment_id, o.payment_type, o.happy_code, o.complete_code, o.created_at, o.updated_at
        FROM tickets t LEFT JOIN orders o ON o.id = t.order_id
        WHERE t.requester_id=$1 AND t.requester_kind=$2
        ORDER BY t.created_at DESC, t.seq DESC`

	rows, err := r.pool.Query(ctx, query, requesterID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketWithOrder
	for rows.Next() {
		var entry domain.TicketWithOrder
		var (
			orderID        *string
			orderUserID    *string
			items, address []byte
			totalAmount    *float64
			orderStatus    *domain.OrderStatus
			requestStatus  *string
			paymentID      *string
			paymentType    *domain.PaymentType
			happyCode      *string
			completeCode   *string
			orderCreatedAt *time.Time
			orderUpdatedAt *time.Time
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.RequesterID,
			&entry.RequesterKind,
			&entry.Name,
			&entry.Email,
			&entry.Phone,
			&entry.Subject,
			&entry.Message,
			&entry.IssueType,
			&entry.Status,
			&entry.Solution,
			&entry.OrderID,
			&entry.CreatedAt,
			&entry.UpdatedAt,
			&orderID,
			&orderUserID,
			&items,
			&totalAmount,
			&address,
			&orderStatus,
			&requestStatus,
			&paymentID,
			&paymentType,
			&happyCode,
			&completeCode,
			&orderCreatedAt,
			&orderUpdatedAt,
		); err != nil {
			return nil, err
		}
		if orderID != nil {
			order := domain.Order{
				ID:            *orderID,
				UserID:        derefString(orderUserID),
				TotalAmount:   derefFloat(totalAmount),
				RequestStatus: derefString(requestStatus),
				PaymentID:     paymentID,
				HappyCode:     derefString(happyCode),
				CompleteCode:  derefString(completeCode),
			}
			if orderStatus != nil {
				order.Status = *orderStatus
			}
			if paymentType != nil {
				order.PaymentType = *paymentType
			}
			if orderCreatedAt != nil {
				order.CreatedAt = *orderCreatedAt
			}
			if orderUpdatedAt != nil {
				order.UpdatedAt = *orderUpdatedAt
			}
			if err := unmarshalOrderDocs(&order, items, address); err != nil {
				return nil, err
			}
			entry.Order = &order
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets ORDER BY created_at DESC, seq DESC`, ticketColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) UpdateResolution(ctx context.Context, id string, status domain.TicketStatus, solution *string) error {
	const query = `UPDATE tickets SET status=$1, solution=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, solution, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.RequesterID,
			&ticket.RequesterKind,
			&ticket.Name,
			&ticket.Email,
			&ticket.Phone,
			&ticket.Subject,
			&ticket.Message,
			&ticket.IssueType,
			&ticket.Status,
			&ticket.Solution,
			&ticket.OrderID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
