package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// AddressRepository stores customer checkout addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *domain.SavedAddress) error
	ListByUser(ctx context.Context, userID string) ([]domain.SavedAddress, error)
}

type addressRepository struct {
	pool *pgxpool.Pool
}

// NewAddressRepository instantiates repository.
func NewAddressRepository(pool *pgxpool.Pool) AddressRepository {
	return &addressRepository{pool: pool}
}

func (r *addressRepository) Create(ctx context.Context, address *domain.SavedAddress) error {
	const query = `
        INSERT INTO user_addresses (user_id, house_no, street, landmark, address_type, full_address)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		address.UserID,
		address.HouseNo,
		address.Street,
		address.Landmark,
		address.AddressType,
		address.FullAddress,
	).Scan(&address.ID, &address.CreatedAt)
}

func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]domain.SavedAddress, error) {
	const query = `
        SELECT id, user_id, house_no, street, landmark, address_type, full_address, created_at
        FROM user_addresses WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SavedAddress
	for rows.Next() {
		var addr domain.SavedAddress
		if err := rows.Scan(
			&addr.ID,
			&addr.UserID,
			&addr.HouseNo,
			&addr.Street,
			&addr.Landmark,
			&addr.AddressType,
			&addr.FullAddress,
			&addr.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, addr)
	}
	return result, rows.Err()
}
