package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/wishwell/donate-backend/internal/adapter/postgres"
	agencyrepo "github.com/wishwell/donate-backend/internal/adapter/postgres/agency"
	"github.com/wishwell/donate-backend/internal/adapter/postgres/changefeed"
	donationrepo "github.com/wishwell/donate-backend/internal/adapter/postgres/donation"
	userrepo "github.com/wishwell/donate-backend/internal/adapter/postgres/user"
	wishcardrepo "github.com/wishwell/donate-backend/internal/adapter/postgres/wishcard"
	"github.com/wishwell/donate-backend/internal/adapter/webhook"
	"github.com/wishwell/donate-backend/internal/auth"
	"github.com/wishwell/donate-backend/internal/config"
	"github.com/wishwell/donate-backend/internal/service/fulfillment"
	wishcardsvc "github.com/wishwell/donate-backend/internal/service/wishcard"
	"github.com/wishwell/donate-backend/internal/transport/middleware"
	"github.com/wishwell/donate-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// to the database, runs migrations, wires services, starts the change
// feed listener, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	cards := wishcardrepo.New(pool)
	donations := donationrepo.New(pool)
	agencies := agencyrepo.New(pool)
	users := userrepo.New(pool)

	notifier := webhook.New(cfg.Notify, logger)
	cardService := wishcardsvc.NewService(logger, cards, agencies, cfg.Checkout)
	reconciler := fulfillment.NewReconciler(logger, cards, users, donations, notifier)

	// The feed is owned here: it starts with the process and stops with
	// it, nothing else manages the subscription.
	feed := changefeed.New(pool, reconciler.HandleEvent, logger)
	feedCtx, stopFeed := context.WithCancel(ctx)
	defer stopFeed()

	feedDone := make(chan error, 1)
	go func() {
		feedDone <- feed.Run(feedCtx)
	}()

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	cardHandler := rest.NewWishCardHandler(cardService, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	router := rest.NewRouter(cardHandler, healthHandler)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			stopFeed()
			<-feedDone
			return fmt.Errorf("http server: %w", err)
		}
	case err := <-feedDone:
		// Run only returns after ctx cancellation, so reaching here
		// means the feed died unexpectedly.
		if err == nil {
			err = errors.New("stopped unexpectedly")
		}
		return fmt.Errorf("change feed terminated: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.String("error", err.Error()))
	}

	stopFeed()
	<-feedDone

	logger.Info("application stopped")
	return nil
}
