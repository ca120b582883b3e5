// Package changefeed subscribes to wishcard change events published by
// the database trigger on the 'wishcard_events' channel.
//
// The subscription is an explicit object with its own lifecycle: the
// process owner constructs it and runs it, nothing else starts listening
// as a side effect. Delivery is best-effort: events arriving while the
// listener is reconnecting are lost, duplicates after a reconnect are
// possible, and handlers run concurrently with no ordering between
// events.
package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wishwell/donate-backend/internal/domain"
)

const channel = "wishcard_events"

const (
	initialRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// Handler consumes one change event. It must not panic; failures are its
// own to log, the feed never inspects them.
type Handler func(ctx context.Context, ev domain.ChangeEvent)

// Feed is a change-feed subscription over a dedicated database connection.
type Feed struct {
	pool    *pgxpool.Pool
	handler Handler
	log     *slog.Logger
}

// New creates a feed that delivers each decoded event to handler.
func New(pool *pgxpool.Pool, handler Handler, log *slog.Logger) *Feed {
	return &Feed{
		pool:    pool,
		handler: handler,
		log:     log.With("component", "changefeed"),
	}
}

// Run listens until ctx is cancelled, reconnecting with exponential
// backoff when the listening connection drops. It blocks, so the process
// owner launches it in its own goroutine.
func (f *Feed) Run(ctx context.Context) error {
	delay := initialRetryDelay

	for {
		err := f.listen(ctx)
		if ctx.Err() != nil {
			f.log.Info("change feed stopped")
			return nil
		}

		f.log.Error("change feed connection lost",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", delay),
		)

		select {
		case <-ctx.Done():
			f.log.Info("change feed stopped")
			return nil
		case <-time.After(delay):
		}

		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}

// listen takes a connection out of the pool for exclusive use, issues
// LISTEN, and blocks on notifications until ctx ends or the connection
// fails.
func (f *Feed) listen(ctx context.Context) error {
	poolConn, err := f.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listening connection: %w", err)
	}

	conn := poolConn.Hijack()
	defer conn.Close(context.Background()) //nolint:errcheck

	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		return fmt.Errorf("listen on %s: %w", channel, err)
	}

	f.log.Info("change feed listening", slog.String("channel", channel))

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		f.dispatch(ctx, notification.Payload)
	}
}

// dispatch decodes one payload and hands it to the handler in its own
// goroutine. Events are independent; a slow reconciliation must not hold
// up the feed. In-flight handlers are deliberately not cancelled on
// shutdown, each runs to completion on a detached context.
func (f *Feed) dispatch(ctx context.Context, raw string) {
	ev, err := decodeEvent(raw)
	if err != nil {
		f.log.Warn("skipping malformed change event",
			slog.String("error", err.Error()),
			slog.String("payload", raw),
		)
		return
	}

	go f.handler(context.WithoutCancel(ctx), ev)
}

// eventPayload mirrors the JSON built by the notify_wishcard_change trigger.
type eventPayload struct {
	Op            string            `json:"op"`
	ID            uuid.UUID         `json:"id"`
	UpdatedFields map[string]string `json:"updated_fields"`
}

func decodeEvent(raw string) (domain.ChangeEvent, error) {
	var p eventPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("decode change event: %w", err)
	}

	op := domain.ChangeOperation(p.Op)
	switch op {
	case domain.ChangeOpInsert, domain.ChangeOpUpdate, domain.ChangeOpDelete:
	default:
		return domain.ChangeEvent{}, fmt.Errorf("unknown change operation %q", p.Op)
	}

	if p.ID == uuid.Nil {
		return domain.ChangeEvent{}, fmt.Errorf("change event missing document id")
	}

	fields := p.UpdatedFields
	if fields == nil {
		fields = map[string]string{}
	}

	return domain.ChangeEvent{
		Operation:     op,
		WishCardID:    p.ID,
		UpdatedFields: fields,
	}, nil
}
