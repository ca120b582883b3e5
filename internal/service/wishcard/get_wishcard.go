package wishcard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/domain"
)

// Get returns a single wishcard by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.WishCard, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get wishcard: %w", err)
	}
	return card, nil
}
