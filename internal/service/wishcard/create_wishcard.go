package wishcard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wishwell/donate-backend/internal/domain"
	"github.com/wishwell/donate-backend/pkg/ctxutil"
)

// Create creates a new draft wishcard for the agency run by the
// authenticated partner. Donors cannot create cards.
func (s *Service) Create(ctx context.Context, input CreateWishCardInput) (*domain.WishCard, error) {
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

	agency, err := s.agencies.GetByManagerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve agency: %w", err)
	}

	card, err := s.cards.Create(ctx, &domain.WishCard{
		AgencyID:       agency.ID,
		ChildFirstName: strings.TrimSpace(input.ChildFirstName),
		ChildLastName:  strings.TrimSpace(input.ChildLastName),
		ChildInterest:  strings.TrimSpace(input.ChildInterest),
		ChildStory:     strings.TrimSpace(input.ChildStory),
		WishItemName:   strings.TrimSpace(input.WishItemName),
		WishItemPrice:  input.WishItemPrice,
		Status:         domain.WishCardStatusDraft,
	})
	if err != nil {
		return nil, fmt.Errorf("create wishcard: %w", err)
	}

	s.log.InfoContext(ctx, "wishcard created",
		slog.String("wishcard_id", card.ID.String()),
		slog.String("agency_id", agency.ID.String()),
		slog.String("item", card.WishItemName),
	)

	return card, nil
}
