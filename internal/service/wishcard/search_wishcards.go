package wishcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/wishwell/donate-backend/internal/domain"
)

// Search runs the fuzzy listing pipeline: eligibility by status and
// exclusion list, free-text narrowing only when a query is present, and
// availability-first ordering.
func (s *Service) Search(ctx context.Context, opts domain.WishCardSearchOptions) ([]*domain.WishCard, error) {
	opts.Query = strings.TrimSpace(opts.Query)

	cards, err := s.cards.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("search wishcards: %w", err)
	}
	return cards, nil
}
