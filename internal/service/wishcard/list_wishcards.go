package wishcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/domain"
	"github.com/wishwell/donate-backend/pkg/ctxutil"
)

// Viewable returns the public listing: published cards, plus donated ones
// when the caller opts in. Capped at 25 by the repository. Lock state is
// irrelevant here; a locked card still shows.
func (s *Service) Viewable(ctx context.Context, includeDonated bool) ([]*domain.WishCard, error) {
	cards, err := s.cards.ListViewable(ctx, includeDonated)
	if err != nil {
		return nil, fmt.Errorf("list viewable wishcards: %w", err)
	}
	return cards, nil
}

// ByAgency returns all of an agency's cards regardless of status.
func (s *Service) ByAgency(ctx context.Context, agencyID uuid.UUID) ([]*domain.WishCard, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	cards, err := s.cards.ListByAgencyID(ctx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("list wishcards by agency: %w", err)
	}
	return cards, nil
}

// All returns every card in the system. Admin only.
func (s *Service) All(ctx context.Context) ([]*domain.WishCard, error) {
	role, ok := ctxutil.UserRoleFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !role.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	cards, err := s.cards.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all wishcards: %w", err)
	}
	return cards, nil
}

// ByStatus returns every card in one status, agency populated. Admin only.
func (s *Service) ByStatus(ctx context.Context, status domain.WishCardStatus) ([]*domain.WishCard, error) {
	role, ok := ctxutil.UserRoleFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !role.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	cards, err := s.cards.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list wishcards by status: %w", err)
	}
	return cards, nil
}

// ByItemName returns published cards whose item name contains the given
// text, case-insensitively.
func (s *Service) ByItemName(ctx context.Context, itemName string) ([]*domain.WishCard, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, domain.NewValidationError("itemName", "required")
	}

	cards, err := s.cards.ListByItemName(ctx, itemName, domain.WishCardStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("list wishcards by item name: %w", err)
	}
	return cards, nil
}
