package domain

import (
	"time"

	"github.com/google/uuid"
)

// Donation is a donor's pledge tied to one wish card. The donation
// subsystem owns the full record; this service only resolves it by wish
// card and advances its status during fulfillment.
type Donation struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	WishCardID   uuid.UUID
	Amount       int64 // cents
	Status       DonationStatus
	DonationDate time.Time
	CreatedAt    time.Time
}

// User represents an application user: a donor, an agency partner, or an
// agency's account manager.
type User struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}
