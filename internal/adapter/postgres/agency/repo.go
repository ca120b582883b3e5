// Package agency implements the Agency repository using PostgreSQL.
package agency

import (
	"context"

	"github.com/google/uuid"

	postgres "github.com/wishwell/donate-backend/internal/adapter/postgres"
	"github.com/wishwell/donate-backend/internal/domain"
)

// Repo provides agency persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new agency repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

const agencyColumns = `id, name, account_manager_id, phone, website,
       address_street1, address_street2, address_city, address_state,
       address_zipcode, address_country, created_at, updated_at`

const getByIDSQL = `
SELECT ` + agencyColumns + `
FROM agencies
WHERE id = $1`

const getByManagerSQL = `
SELECT ` + agencyColumns + `
FROM agencies
WHERE account_manager_id = $1
LIMIT 1`

// GetByID returns an agency by primary key.
// Returns domain.ErrNotFound if the agency does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error) {
	a, err := scanAgency(r.q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "agency", id)
	}
	return a, nil
}

// GetByManagerID returns the agency run by the given account manager.
func (r *Repo) GetByManagerID(ctx context.Context, managerID uuid.UUID) (*domain.Agency, error) {
	a, err := scanAgency(r.q.QueryRow(ctx, getByManagerSQL, managerID))
	if err != nil {
		return nil, postgres.MapError(err, "agency", managerID)
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgency(row rowScanner) (*domain.Agency, error) {
	var a domain.Agency
	err := row.Scan(
		&a.ID, &a.Name, &a.AccountManagerID, &a.Phone, &a.Website,
		&a.Address.Street1, &a.Address.Street2, &a.Address.City, &a.Address.State,
		&a.Address.Zipcode, &a.Address.Country, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
