package domain

import (
	"time"

	"github.com/google/uuid"
)

// WishCard is one child's requested gift, owned by exactly one Agency.
//
// The lock fields implement a time-boxed courtesy lock: while a donor is
// in checkout, LockedBy holds their user ID and LockedUntil the lease
// expiry. Nothing in-process clears an expired lease, so every reader
// must go through IsLockedAt, which treats an expired lock like no lock.
type WishCard struct {
	ID             uuid.UUID
	AgencyID       uuid.UUID
	ChildFirstName string
	ChildLastName  string
	ChildInterest  string
	ChildStory     string
	WishItemName   string
	WishItemPrice  int64 // cents
	Status         WishCardStatus
	LockedBy       *uuid.UUID
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Agency is populated on demand by joined reads; nil otherwise.
	Agency *Agency
}

// IsLockedAt reports whether the card carries an unexpired checkout lock
// at the given instant. The boundary is exclusive: at exactly LockedUntil
// the lock is already expired.
func (w *WishCard) IsLockedAt(now time.Time) bool {
	return w.LockedBy != nil && w.LockedUntil != nil && w.LockedUntil.After(now)
}

// LockHolder returns the holder of an unexpired lock, or (uuid.Nil, false).
func (w *WishCard) LockHolder(now time.Time) (uuid.UUID, bool) {
	if !w.IsLockedAt(now) {
		return uuid.Nil, false
	}
	return *w.LockedBy, true
}

// WishCardUpdateParams is a partial field-set patch for a wish card.
// Nil fields are left untouched.
type WishCardUpdateParams struct {
	ChildFirstName *string
	ChildLastName  *string
	ChildInterest  *string
	ChildStory     *string
	WishItemName   *string
	WishItemPrice  *int64
	Status         *WishCardStatus
}

// IsEmpty reports whether the patch would change nothing.
func (p WishCardUpdateParams) IsEmpty() bool {
	return p.ChildFirstName == nil && p.ChildLastName == nil &&
		p.ChildInterest == nil && p.ChildStory == nil &&
		p.WishItemName == nil && p.WishItemPrice == nil && p.Status == nil
}

// WishCardSearchOptions narrows and orders a wish card listing.
type WishCardSearchOptions struct {
	// Query is OR-matched case-insensitively across item name, child
	// story, child interest and child first/last name. Empty means no
	// text filter.
	Query string

	// IncludeDonated widens the eligible statuses from {published} to
	// {published, donated}.
	IncludeDonated bool

	// ExcludeIDs removes cards from the result regardless of match,
	// so already-shown cards are not re-surfaced.
	ExcludeIDs []uuid.UUID

	// ReverseSort flips the secondary creation-time ordering to newest
	// first. The primary ordering (status descending) is fixed.
	ReverseSort bool
}
