// Package wishcard implements the WishCard repository using PostgreSQL.
// Fixed-shape queries are raw SQL consts; the search pipeline builds its
// query dynamically (see search.go). The checkout lock is two columns on
// the wishcards row, written last-writer-wins with no holder check.
package wishcard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/wishwell/donate-backend/internal/adapter/postgres"
	"github.com/wishwell/donate-backend/internal/domain"
)

// Repo provides wishcard persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new wishcard repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

const wishCardColumns = `id, agency_id, child_first_name, child_last_name, child_interest,
       child_story, wish_item_name, wish_item_price, status, locked_by, locked_until,
       created_at, updated_at`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO wishcards (agency_id, child_first_name, child_last_name, child_interest,
                       child_story, wish_item_name, wish_item_price, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + wishCardColumns

const getByIDSQL = `
SELECT ` + wishCardColumns + `
FROM wishcards
WHERE id = $1`

const getByIDWithAgencySQL = `
SELECT w.id, w.agency_id, w.child_first_name, w.child_last_name, w.child_interest,
       w.child_story, w.wish_item_name, w.wish_item_price, w.status, w.locked_by,
       w.locked_until, w.created_at, w.updated_at,
       a.id, a.name, a.account_manager_id, a.phone, a.website,
       a.address_street1, a.address_street2, a.address_city, a.address_state,
       a.address_zipcode, a.address_country, a.created_at, a.updated_at
FROM wishcards w
JOIN agencies a ON w.agency_id = a.id
WHERE w.id = $1`

const listByAgencySQL = `
SELECT ` + wishCardColumns + `
FROM wishcards
WHERE agency_id = $1
ORDER BY created_at DESC`

const listViewableSQL = `
SELECT ` + wishCardColumns + `
FROM wishcards
WHERE status = ANY($1)
ORDER BY created_at DESC
LIMIT 25`

const listByStatusSQL = `
SELECT w.id, w.agency_id, w.child_first_name, w.child_last_name, w.child_interest,
       w.child_story, w.wish_item_name, w.wish_item_price, w.status, w.locked_by,
       w.locked_until, w.created_at, w.updated_at,
       a.id, a.name, a.account_manager_id, a.phone, a.website,
       a.address_street1, a.address_street2, a.address_city, a.address_state,
       a.address_zipcode, a.address_country, a.created_at, a.updated_at
FROM wishcards w
JOIN agencies a ON w.agency_id = a.id
WHERE w.status = $1
ORDER BY w.created_at DESC`

const listAllSQL = `
SELECT ` + wishCardColumns + `
FROM wishcards
ORDER BY created_at DESC`

const listByItemNameSQL = `
SELECT ` + wishCardColumns + `
FROM wishcards
WHERE wish_item_name ILIKE $1 AND status = $2
ORDER BY created_at DESC`

const deleteSQL = `DELETE FROM wishcards WHERE id = $1`

const acquireLockSQL = `
UPDATE wishcards
SET locked_by = $2, locked_until = $3, updated_at = now()
WHERE id = $1
RETURNING ` + wishCardColumns

const releaseLockSQL = `
UPDATE wishcards
SET locked_by = NULL, locked_until = NULL, updated_at = now()
WHERE id = $1
RETURNING ` + wishCardColumns

const clearExpiredLocksSQL = `
UPDATE wishcards
SET locked_by = NULL, locked_until = NULL, updated_at = now()
WHERE locked_by IS NOT NULL AND locked_until <= $1`

const getLockedByUserSQL = `
SELECT ` + wishCardColumns + `
FROM wishcards
WHERE locked_by = $1
LIMIT 1`

// ---------------------------------------------------------------------------
// CRUD
// ---------------------------------------------------------------------------

// Create inserts a new wishcard and returns the persisted row.
func (r *Repo) Create(ctx context.Context, card *domain.WishCard) (*domain.WishCard, error) {
	status := card.Status
	if status == "" {
		status = domain.WishCardStatusDraft
	}

	row := r.q.QueryRow(ctx, createSQL,
		card.AgencyID, card.ChildFirstName, card.ChildLastName, card.ChildInterest,
		card.ChildStory, card.WishItemName, card.WishItemPrice, status,
	)

	created, err := scanWishCard(row)
	if err != nil {
		return nil, postgres.MapError(err, "wishcard", uuid.Nil)
	}

	return created, nil
}

// GetByID returns a wishcard by primary key.
// Returns domain.ErrNotFound if the card does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WishCard, error) {
	card, err := scanWishCard(r.q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "wishcard", id)
	}
	return card, nil
}

// GetByIDWithAgency returns a wishcard with its owning agency populated.
func (r *Repo) GetByIDWithAgency(ctx context.Context, id uuid.UUID) (*domain.WishCard, error) {
	card, err := scanWishCardWithAgency(r.q.QueryRow(ctx, getByIDWithAgencySQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "wishcard", id)
	}
	return card, nil
}

// ListByAgencyID returns all wishcards owned by an agency, newest first.
// Returns an empty slice (not nil) when the agency has no cards.
func (r *Repo) ListByAgencyID(ctx context.Context, agencyID uuid.UUID) ([]*domain.WishCard, error) {
	rows, err := r.q.Query(ctx, listByAgencySQL, agencyID)
	if err != nil {
		return nil, fmt.Errorf("list wishcards by agency: %w", err)
	}
	defer rows.Close()

	cards, err := scanWishCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list wishcards by agency: %w", err)
	}

	return cards, nil
}

// ListViewable returns up to 25 cards visible in public listings:
// published, plus donated when includeDonated is set. Lock fields do not
// affect visibility; an expired lock reads the same as no lock.
func (r *Repo) ListViewable(ctx context.Context, includeDonated bool) ([]*domain.WishCard, error) {
	statuses := []string{string(domain.WishCardStatusPublished)}
	if includeDonated {
		statuses = append(statuses, string(domain.WishCardStatusDonated))
	}

	rows, err := r.q.Query(ctx, listViewableSQL, statuses)
	if err != nil {
		return nil, fmt.Errorf("list viewable wishcards: %w", err)
	}
	defer rows.Close()

	cards, err := scanWishCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list viewable wishcards: %w", err)
	}

	return cards, nil
}

// ListByStatus returns every card in one status with its agency populated,
// newest first.
func (r *Repo) ListByStatus(ctx context.Context, status domain.WishCardStatus) ([]*domain.WishCard, error) {
	rows, err := r.q.Query(ctx, listByStatusSQL, status)
	if err != nil {
		return nil, fmt.Errorf("list wishcards by status: %w", err)
	}
	defer rows.Close()

	var result []*domain.WishCard
	for rows.Next() {
		card, err := scanWishCardWithAgency(rows)
		if err != nil {
			return nil, fmt.Errorf("list wishcards by status: %w", err)
		}
		result = append(result, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list wishcards by status: %w", err)
	}

	if result == nil {
		result = []*domain.WishCard{}
	}

	return result, nil
}

// ListAll returns every wishcard regardless of status, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]*domain.WishCard, error) {
	rows, err := r.q.Query(ctx, listAllSQL)
	if err != nil {
		return nil, fmt.Errorf("list all wishcards: %w", err)
	}
	defer rows.Close()

	cards, err := scanWishCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list all wishcards: %w", err)
	}

	return cards, nil
}

// ListByItemName returns cards in one status whose item name contains the
// given text, case-insensitively.
func (r *Repo) ListByItemName(ctx context.Context, itemName string, status domain.WishCardStatus) ([]*domain.WishCard, error) {
	rows, err := r.q.Query(ctx, listByItemNameSQL, "%"+itemName+"%", status)
	if err != nil {
		return nil, fmt.Errorf("list wishcards by item name: %w", err)
	}
	defer rows.Close()

	cards, err := scanWishCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list wishcards by item name: %w", err)
	}

	return cards, nil
}

// Update applies a partial field-set patch and returns the updated row.
// Returns domain.ErrNotFound if the card does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.WishCardUpdateParams) (*domain.WishCard, error) {
	if params.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	sql, args, err := buildUpdate(id, params)
	if err != nil {
		return nil, fmt.Errorf("build wishcard update: %w", err)
	}

	card, err := scanWishCard(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "wishcard", id)
	}

	return card, nil
}

// Delete removes a wishcard. Returns domain.ErrNotFound for a missing row.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "wishcard", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishcard %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Checkout lock
// ---------------------------------------------------------------------------

// AcquireLock assigns the checkout lock to userID until the given expiry.
// This is a last-writer-wins overwrite: it does not check whether another
// still-valid lock exists. Returns domain.ErrNotFound if the card does
// not exist.
func (r *Repo) AcquireLock(ctx context.Context, id, userID uuid.UUID, until time.Time) (*domain.WishCard, error) {
	card, err := scanWishCard(r.q.QueryRow(ctx, acquireLockSQL, id, userID, until))
	if err != nil {
		return nil, postgres.MapError(err, "wishcard", id)
	}
	return card, nil
}

// ReleaseLock clears both lock fields regardless of the current holder.
// Returns domain.ErrNotFound if the card does not exist.
func (r *Repo) ReleaseLock(ctx context.Context, id uuid.UUID) (*domain.WishCard, error) {
	card, err := scanWishCard(r.q.QueryRow(ctx, releaseLockSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "wishcard", id)
	}
	return card, nil
}

// GetLockedByUser returns the card whose lock field names the given user,
// letting a donor resume or abandon an in-progress checkout. The lock may
// already have lapsed; callers decide with IsLockedAt.
func (r *Repo) GetLockedByUser(ctx context.Context, userID uuid.UUID) (*domain.WishCard, error) {
	card, err := scanWishCard(r.q.QueryRow(ctx, getLockedByUserSQL, userID))
	if err != nil {
		return nil, postgres.MapError(err, "wishcard", userID)
	}
	return card, nil
}

// ClearExpiredLocks nulls the lock fields of every card whose lease
// lapsed on or before the given instant. Readers already treat such
// leases as no lock; this is operator hygiene, not correctness.
func (r *Repo) ClearExpiredLocks(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, clearExpiredLocksSQL, asOf)
	if err != nil {
		return 0, fmt.Errorf("clear expired locks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWishCard(row rowScanner) (*domain.WishCard, error) {
	var w domain.WishCard
	err := row.Scan(
		&w.ID, &w.AgencyID, &w.ChildFirstName, &w.ChildLastName, &w.ChildInterest,
		&w.ChildStory, &w.WishItemName, &w.WishItemPrice, &w.Status, &w.LockedBy,
		&w.LockedUntil, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func scanWishCardWithAgency(row rowScanner) (*domain.WishCard, error) {
	var (
		w domain.WishCard
		a domain.Agency
	)
	err := row.Scan(
		&w.ID, &w.AgencyID, &w.ChildFirstName, &w.ChildLastName, &w.ChildInterest,
		&w.ChildStory, &w.WishItemName, &w.WishItemPrice, &w.Status, &w.LockedBy,
		&w.LockedUntil, &w.CreatedAt, &w.UpdatedAt,
		&a.ID, &a.Name, &a.AccountManagerID, &a.Phone, &a.Website,
		&a.Address.Street1, &a.Address.Street2, &a.Address.City, &a.Address.State,
		&a.Address.Zipcode, &a.Address.Country, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Agency = &a
	return &w, nil
}

func scanWishCards(rows pgx.Rows) ([]*domain.WishCard, error) {
	var result []*domain.WishCard
	for rows.Next() {
		card, err := scanWishCard(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.WishCard{}
	}

	return result, nil
}
