package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wishwell/donate-backend/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrAlreadyExists},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, domain.ErrNotFound},
		{"check violation", &pgconn.PgError{Code: "23514"}, domain.ErrValidation},
		{"deadline passes through", context.DeadlineExceeded, context.DeadlineExceeded},
		{"cancellation passes through", context.Canceled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.in, "wishcard", id)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("MapError(nil) = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(%v) = %v, want wrapped %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapError_UnknownErrorIsWrapped(t *testing.T) {
	t.Parallel()

	base := errors.New("connection reset")
	got := MapError(base, "donation", uuid.Nil)
	if !errors.Is(got, base) {
		t.Errorf("expected original error preserved, got %v", got)
	}
	if errors.Is(got, domain.ErrNotFound) {
		t.Error("unknown error must not map to ErrNotFound")
	}
}
