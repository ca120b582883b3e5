// Package donation implements the Donation repository using PostgreSQL.
// The donation subsystem owns the full record; this service only needs
// lookup by wishcard and status advancement during fulfillment.
package donation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/wishwell/donate-backend/internal/adapter/postgres"
	"github.com/wishwell/donate-backend/internal/domain"
)

// Repo provides donation persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new donation repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

const donationColumns = `id, user_id, wishcard_id, amount, status, donation_date, created_at`

const getByIDSQL = `
SELECT ` + donationColumns + `
FROM donations
WHERE id = $1`

const getByWishCardIDSQL = `
SELECT ` + donationColumns + `
FROM donations
WHERE wishcard_id = $1
ORDER BY donation_date DESC
LIMIT 1`

const createSQL = `
INSERT INTO donations (user_id, wishcard_id, amount, status, donation_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + donationColumns

const updateStatusSQL = `
UPDATE donations
SET status = $2
WHERE id = $1
RETURNING ` + donationColumns

// GetByID returns a donation by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	d, err := scanDonation(r.q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "donation", id)
	}
	return d, nil
}

// GetByWishCardID returns the most recent donation pledged against a
// wishcard. Returns domain.ErrNotFound when the card has none.
func (r *Repo) GetByWishCardID(ctx context.Context, wishCardID uuid.UUID) (*domain.Donation, error) {
	d, err := scanDonation(r.q.QueryRow(ctx, getByWishCardIDSQL, wishCardID))
	if err != nil {
		return nil, postgres.MapError(err, "donation", wishCardID)
	}
	return d, nil
}

// Create inserts a new donation and returns the persisted row.
func (r *Repo) Create(ctx context.Context, d *domain.Donation) (*domain.Donation, error) {
	status := d.Status
	if status == "" {
		status = domain.DonationStatusConfirmed
	}

	created, err := scanDonation(r.q.QueryRow(ctx, createSQL,
		d.UserID, d.WishCardID, d.Amount, status, d.DonationDate))
	if err != nil {
		return nil, postgres.MapError(err, "donation", uuid.Nil)
	}

	return created, nil
}

// UpdateStatus advances a donation's status and returns the updated row.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) (*domain.Donation, error) {
	d, err := scanDonation(r.q.QueryRow(ctx, updateStatusSQL, id, status))
	if err != nil {
		return nil, postgres.MapError(err, "donation", id)
	}
	return d, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonation(row rowScanner) (*domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(&d.ID, &d.UserID, &d.WishCardID, &d.Amount, &d.Status, &d.DonationDate, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan donation: %w", err)
	}
	return &d, nil
}
