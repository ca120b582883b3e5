package wishcard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/domain"
	"github.com/wishwell/donate-backend/pkg/ctxutil"
)

// Delete removes a wishcard entirely. Admin only. Deleting the row also
// discards any lock held on it; nothing notifies the holder.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	role, ok := ctxutil.UserRoleFromCtx(ctx)
	if !ok || !role.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.cards.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete wishcard: %w", err)
	}

	s.log.InfoContext(ctx, "wishcard deleted",
		slog.String("wishcard_id", id.String()),
		slog.String("user_id", userID.String()),
	)

	return nil
}
