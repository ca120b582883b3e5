// Package wishcard implements the wishcard business logic: creation and
// edits by agency partners, public listing and fuzzy search for donors,
// and the checkout courtesy lock.
package wishcard

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/config"
	"github.com/wishwell/donate-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type cardRepo interface {
	Create(ctx context.Context, card *domain.WishCard) (*domain.WishCard, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WishCard, error)
	ListByAgencyID(ctx context.Context, agencyID uuid.UUID) ([]*domain.WishCard, error)
	ListViewable(ctx context.Context, includeDonated bool) ([]*domain.WishCard, error)
	ListAll(ctx context.Context) ([]*domain.WishCard, error)
	ListByStatus(ctx context.Context, status domain.WishCardStatus) ([]*domain.WishCard, error)
	ListByItemName(ctx context.Context, itemName string, status domain.WishCardStatus) ([]*domain.WishCard, error)
	Search(ctx context.Context, opts domain.WishCardSearchOptions) ([]*domain.WishCard, error)
	Update(ctx context.Context, id uuid.UUID, params domain.WishCardUpdateParams) (*domain.WishCard, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AcquireLock(ctx context.Context, id, userID uuid.UUID, until time.Time) (*domain.WishCard, error)
	ReleaseLock(ctx context.Context, id uuid.UUID) (*domain.WishCard, error)
	GetLockedByUser(ctx context.Context, userID uuid.UUID) (*domain.WishCard, error)
}

type agencyRepo interface {
	GetByManagerID(ctx context.Context, managerID uuid.UUID) (*domain.Agency, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service provides wishcard operations.
type Service struct {
	cards    cardRepo
	agencies agencyRepo
	lockTTL  time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new WishCard service.
func NewService(
	log *slog.Logger,
	cards cardRepo,
	agencies agencyRepo,
	cfg config.CheckoutConfig,
) *Service {
	return &Service{
		cards:    cards,
		agencies: agencies,
		lockTTL:  cfg.LockTTL,
		now:      time.Now,
		log:      log.With("service", "wishcard"),
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
