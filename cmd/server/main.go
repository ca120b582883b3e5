// Command server runs the donation backend: REST API, embedded
// migrations, and the wishcard change-feed listener.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/wishwell/donate-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
