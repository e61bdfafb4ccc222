package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ticketboss/ticketboss/internal/app"
	"github.com/ticketboss/ticketboss/internal/clock"
	"github.com/ticketboss/ticketboss/internal/config"
	"github.com/ticketboss/ticketboss/internal/domain"
	"github.com/ticketboss/ticketboss/internal/queue"
	"github.com/ticketboss/ticketboss/internal/storage/postgres"
	transporthttp "github.com/ticketboss/ticketboss/internal/transport/http"
	"github.com/ticketboss/ticketboss/migrations"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	seeded, err := postgres.SeedEvent(startupCtx, pool, domain.EventInventory{
		ID:             cfg.EventID,
		Name:           cfg.EventName,
		TotalSeats:     cfg.EventSeats,
		AvailableSeats: cfg.EventSeats,
		Version:        0,
	})
	if err != nil {
		logger.Fatal("seed event", zap.Error(err))
	}
	if seeded {
		logger.Info("event seeded", zap.String("event_id", cfg.EventID), zap.Int("seats", cfg.EventSeats))
	} else {
		logger.Info("event already exists", zap.String("event_id", cfg.EventID))
	}

	opts := []app.ReservationServiceOption{}
	if cfg.RabbitURL != "" {
		pub, err := queue.NewPublisher(cfg.RabbitURL, logger)
		if err != nil {
			logger.Warn("reservation event stream disabled", zap.Error(err))
		} else {
			defer pub.Close()
			opts = append(opts, app.WithPublisher(pub))
			go queue.StartAuditConsumer(cfg.RabbitURL, logger)
		}
	}

	inventoryRepo := postgres.NewInventoryRepository(pool)
	ledgerRepo := postgres.NewReservationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	svc := app.NewReservationService(inventoryRepo, ledgerRepo, txRunner, clock.NewSystem(), cfg.EventID, opts...)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/reservations", transporthttp.HandleReservations(svc))
	mux.Handle("/reservations/", transporthttp.HandleCancelReservation(svc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("port", cfg.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
