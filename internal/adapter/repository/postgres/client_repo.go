package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goprovision/internal/domain"
)

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// GetByBorrowerRefs returns borrower records keyed by reference. Refs with
// no matching record are absent from the map; callers treat a missing
// borrower the same as a missing date of birth.
func (r *ClientRepository) GetByBorrowerRefs(ctx context.Context, refs []string) (map[string]*domain.Client, error) {
	if len(refs) == 0 {
		return map[string]*domain.Client{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT borrower_ref, full_name, contact, date_of_birth
		   FROM clients
		  WHERE borrower_ref = ANY($1)`,
		refs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make(map[string]*domain.Client, len(refs))
	for rows.Next() {
		var (
			client domain.Client
			dob    pgtype.Date
		)

		if err := rows.Scan(&client.BorrowerRef, &client.FullName, &client.Contact, &dob); err != nil {
			return nil, err
		}

		client.DateOfBirth = pgDateToTimePtr(dob)
		clients[client.BorrowerRef] = &client
	}

	return clients, rows.Err()
}
