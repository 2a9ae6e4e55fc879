package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// OrderRepository encapsulates order persistence. Items and the delivery
// address are stored as JSONB documents, so an order commits atomically.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAllWithUser(ctx context.Context) ([]domain.OrderWithUser, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	UpdateTimeSlot(ctx context.Context, id, timeSlot string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, user_id, items, total_amount, address, status, request_status,
               payment_id, payment_type, happy_code, complete_code, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	address, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}

	const query = `
        INSERT INTO orders (user_id, items, total_amount, address, status, request_status,
                            payment_id, payment_type, happy_code, complete_code)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.UserID,
		items,
		order.TotalAmount,
		address,
		order.Status,
		order.RequestStatus,
		order.PaymentID,
		order.PaymentType,
		order.HappyCode,
		order.CompleteCode,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id=$1`, orderColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanOrderRow(row)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id=$1 ORDER BY seq`, orderColumns)
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	return result, rows.Err()
}

func (r *orderRepository) ListAllWithUser(ctx context.Context) ([]domain.OrderWithUser, error) {
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.email
        FROM orders o JOIN users u ON u.id = o.user_id
        ORDER BY o.seq`, prefixedOrderColumns("o"))

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OrderWithUser
	for rows.Next() {
		var entry domain.OrderWithUser
		var items, address []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&items,
			&entry.TotalAmount,
			&address,
			&entry.Status,
			&entry.RequestStatus,
			&entry.PaymentID,
			&entry.PaymentType,
			&entry.HappyCode,
			&entry.CompleteCode,
			&entry.CreatedAt,
			&entry.UpdatedAt,
			&entry.UserName,
			&entry.UserEmail,
		); err != nil {
			return nil, err
		}
		if err := unmarshalOrderDocs(&entry.Order, items, address); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// UpdateStatus overwrites the status field. Last write wins; concurrent
// updates against the same order are not serialized here.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) UpdateTimeSlot(ctx context.Context, id, timeSlot string) error {
	const query = `
        UPDATE orders
        SET address = jsonb_set(address, '{time_slot}', to_jsonb($1::text)), updated_at=NOW()
        WHERE id=$2 AND address IS NOT NULL`
	cmd, err := r.pool.Exec(ctx, query, timeSlot, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (r *orderRepository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int64)
	for rows.Next() {
		var status domain.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanOrderRow(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var items, address []byte
	if err := row.Scan(
		&order.ID,
		&order.UserID,
		&items,
		&order.TotalAmount,
		&address,
		&order.Status,
		&order.RequestStatus,
		&order.PaymentID,
		&order.PaymentType,
		&order.HappyCode,
		&order.CompleteCode,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalOrderDocs(&order, items, address); err != nil {
		return nil, err
	}
	return &order, nil
}

func unmarshalOrderDocs(order *domain.Order, items, address []byte) error {
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return fmt.Errorf("unmarshal items: %w", err)
		}
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &order.Address); err != nil {
			return fmt.Errorf("unmarshal address: %w", err)
		}
	}
	return nil
}

func prefixedOrderColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.user_id, %[1]s.items, %[1]s.total_amount, %[1]s.address,
               %[1]s.status, %[1]s.request_status, %[1]s.payment_id, %[1]s.payment_type,
               %[1]s.happy_code, %[1]s.complete_code, %[1]s.created_at, %[1]s.updated_at`, alias)
}
