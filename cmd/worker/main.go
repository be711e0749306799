// Package main is the entry point for the faktura background worker.
// It relays outbox events and runs periodic storage cleanup.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"faktura/internal/infrastructure/storage/postgres"
	"faktura/internal/infrastructure/storage/postgres/auth_repo"
	"faktura/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
		Component:   "worker",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting faktura worker")

	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	poolCfg.MaxConns = 5

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	worker := NewWorker(pool, txManager, log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// Worker relays outbox events and reaps expired storage rows.
type Worker struct {
	relay       *postgres.OutboxRelay
	tokens      *auth_repo.TokenRepo
	idempotency *postgres.IdempotencyStore
	log         *logger.Logger
}

// NewWorker creates the background worker.
func NewWorker(pool *postgres.Pool, txManager *postgres.TxManager, log *logger.Logger) *Worker {
	return &Worker{
		relay:       postgres.NewOutboxRelay(pool.Pool, 100, &logDeliveryHandler{log: log}),
		tokens:      auth_repo.NewTokenRepo(txManager),
		idempotency: postgres.NewIdempotencyStore(txManager, 24*time.Hour),
		log:         log,
	}
}

// Run polls the outbox and triggers hourly cleanup until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(1 * time.Hour)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processOutbox(ctx)
		case <-cleanupTicker.C:
			w.cleanup(ctx)
		}
	}
}

func (w *Worker) processOutbox(ctx context.Context) {
	delivered, err := w.relay.ProcessBatch(ctx)
	if err != nil {
		w.log.Errorw("outbox batch failed", "error", err)
		return
	}
	if delivered > 0 {
		w.log.Infow("outbox events delivered", "count", delivered)
	}
}

func (w *Worker) cleanup(ctx context.Context) {
	if removed, err := w.tokens.CleanupExpiredTokens(ctx); err != nil {
		w.log.Errorw("token cleanup failed", "error", err)
	} else if removed > 0 {
		w.log.Infow("expired tokens removed", "count", removed)
	}

	if removed, err := w.idempotency.CleanupExpired(ctx); err != nil {
		w.log.Errorw("idempotency cleanup failed", "error", err)
	} else if removed > 0 {
		w.log.Infow("expired idempotency keys removed", "count", removed)
	}

	if removed, err := w.relay.PurgePublished(ctx, 7*24*time.Hour); err != nil {
		w.log.Errorw("outbox purge failed", "error", err)
	} else if removed > 0 {
		w.log.Infow("published outbox messages purged", "count", removed)
	}
}

// logDeliveryHandler is the default outbox consumer: it logs delivered
// events. Swap for a broker or webhook handler when one exists.
type logDeliveryHandler struct {
	log *logger.Logger
}

func (h *logDeliveryHandler) Handle(ctx context.Context, msg *postgres.OutboxMessage) error {
	h.log.Infow("domain event",
		"event_type", msg.EventType,
		"aggregate_type", msg.AggregateType,
		"aggregate_id", msg.AggregateID,
		"owner_id", msg.OwnerID,
	)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
