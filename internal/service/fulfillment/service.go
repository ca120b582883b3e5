// Package fulfillment reacts to wishcard change events. When a card
// moves to ordered it restores cross-entity consistency: the linked
// donation advances to ordered and the agency's account manager is
// notified to place the order.
package fulfillment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/adapter/webhook"
	"github.com/wishwell/donate-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type cardRepo interface {
	GetByIDWithAgency(ctx context.Context, id uuid.UUID) (*domain.WishCard, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type donationRepo interface {
	GetByWishCardID(ctx context.Context, wishCardID uuid.UUID) (*domain.Donation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) (*domain.Donation, error)
}

type orderedNotifier interface {
	SendOrdered(ctx context.Context, note webhook.OrderedNotification) error
}

// ---------------------------------------------------------------------------
// Reconciler
// ---------------------------------------------------------------------------

// Reconciler performs the cross-entity reconciliation for recognized
// wishcard transitions.
type Reconciler struct {
	cards     cardRepo
	users     userRepo
	donations donationRepo
	notifier  orderedNotifier
	log       *slog.Logger
}

// NewReconciler creates a new fulfillment reconciler.
func NewReconciler(
	log *slog.Logger,
	cards cardRepo,
	users userRepo,
	donations donationRepo,
	notifier orderedNotifier,
) *Reconciler {
	return &Reconciler{
		cards:     cards,
		users:     users,
		donations: donations,
		notifier:  notifier,
		log:       log.With("service", "fulfillment"),
	}
}
