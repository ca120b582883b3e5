package wishcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/domain"
	"github.com/wishwell/donate-backend/pkg/ctxutil"
)

// Lock reserves a wishcard for the authenticated donor's checkout for the
// configured TTL. The reservation is a courtesy lease, not mutual
// exclusion: a concurrent Lock by another donor overwrites this one, and
// the last writer holds the card. Returns the card with lock fields set.
func (s *Service) Lock(ctx context.Context, id uuid.UUID) (*domain.WishCard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	until := s.now().Add(s.lockTTL)

	card, err := s.cards.AcquireLock(ctx, id, userID, until)
	if err != nil {
		return nil, fmt.Errorf("lock wishcard: %w", err)
	}

	s.log.InfoContext(ctx, "wishcard locked",
		slog.String("wishcard_id", id.String()),
		slog.String("user_id", userID.String()),
		slog.Time("until", until),
	)

	return card, nil
}

// Unlock releases a wishcard's checkout lock. The release is
// unconditional: it does not verify the caller still holds the lease,
// since the lease may have been overwritten or lapsed since acquisition.
func (s *Service) Unlock(ctx context.Context, id uuid.UUID) (*domain.WishCard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	card, err := s.cards.ReleaseLock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unlock wishcard: %w", err)
	}

	s.log.InfoContext(ctx, "wishcard unlocked",
		slog.String("wishcard_id", id.String()),
		slog.String("user_id", userID.String()),
	)

	return card, nil
}

// LockedByMe returns the card the authenticated user currently holds a
// live lock on, for resuming an in-progress checkout. A lapsed lease
// reads as no lock, so it reports domain.ErrNotFound.
func (s *Service) LockedByMe(ctx context.Context) (*domain.WishCard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	card, err := s.cards.GetLockedByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get locked wishcard: %w", err)
	}

	if !card.IsLockedAt(s.now()) {
		return nil, fmt.Errorf("lock lapsed: %w", domain.ErrNotFound)
	}

	return card, nil
}
