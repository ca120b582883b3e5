package wishcard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/domain"
	"github.com/wishwell/donate-backend/pkg/ctxutil"
)

// Update applies a partial edit to a wishcard. Partners may only edit
// their own agency's cards; admins may edit any card, including direct
// status writes. No transition guard exists: any valid status value is
// an accepted write, and downstream reconciliation decides whether the
// change has side effects.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateWishCardInput) (*domain.WishCard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	role, ok := ctxutil.UserRoleFromCtx(ctx)
	if !ok || role == domain.UserRoleDonor {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !role.IsAdmin() {
		if err := s.checkOwnership(ctx, id, userID); err != nil {
			return nil, err
		}
	}

	card, err := s.cards.Update(ctx, id, input.toParams())
	if err != nil {
		return nil, fmt.Errorf("update wishcard: %w", err)
	}

	attrs := []any{
		slog.String("wishcard_id", card.ID.String()),
		slog.String("user_id", userID.String()),
	}
	if input.Status != nil {
		attrs = append(attrs, slog.String("status", card.Status.String()))
	}
	s.log.InfoContext(ctx, "wishcard updated", attrs...)

	return card, nil
}

// checkOwnership verifies the card belongs to the agency the user runs.
func (s *Service) checkOwnership(ctx context.Context, cardID, userID uuid.UUID) error {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return fmt.Errorf("get wishcard: %w", err)
	}

	agency, err := s.agencies.GetByManagerID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve agency: %w", err)
	}

	if card.AgencyID != agency.ID {
		return domain.ErrForbidden
	}
	return nil
}
