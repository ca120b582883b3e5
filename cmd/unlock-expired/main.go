// Command unlock-expired nulls the lock fields of wishcards whose
// checkout lease has lapsed. Readers already treat a lapsed lease as no
// lock, so this is hygiene for operators and reporting, not a
// correctness requirement. Intended to be invoked by an external cron
// job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/wishwell/donate-backend/internal/adapter/postgres"
	"github.com/wishwell/donate-backend/internal/adapter/postgres/wishcard"
	"github.com/wishwell/donate-backend/internal/app"
	"github.com/wishwell/donate-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	cards := wishcard.New(pool)

	asOf := time.Now()
	cleared, err := cards.ClearExpiredLocks(ctx, asOf)
	if err != nil {
		logger.Error("clear expired locks failed",
			slog.String("error", err.Error()),
			slog.Time("as_of", asOf),
		)
		os.Exit(1)
	}

	logger.Info("expired locks cleared",
		slog.Int64("cleared", cleared),
		slog.Time("as_of", asOf),
	)
}
