package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/config"
	"github.com/xavierca1/vida-ativa-leads/internal/entity"
	"github.com/xavierca1/vida-ativa-leads/internal/infra/database"
	"github.com/xavierca1/vida-ativa-leads/internal/infra/http/handlers"
	"github.com/xavierca1/vida-ativa-leads/internal/infra/queue"
	"github.com/xavierca1/vida-ativa-leads/internal/logger"
	"github.com/xavierca1/vida-ativa-leads/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vida-ativa-leads: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Store
	repo, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// 2. Eventos (opcional)
	var (
		publisher usecase.LeadEventPublisher = usecase.NopPublisher{}
		broker    handlers.BrokerStatus
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		publisher = queue.NewProducer(rabbitMQ.Ch)
		broker = rabbitMQ
		log.Info("lead events enabled", zap.String("exchange", queue.ExchangeName))
	} else {
		log.Info("RABBITMQ_URL not set, lead events disabled")
	}

	// 3. UseCases
	leadHandler := handlers.NewLeadHandler(handlers.LeadUseCases{
		Create:     usecase.NewCreateLeadUseCase(repo, publisher, cfg.WhatsAppURL, log),
		List:       usecase.NewListLeadsUseCase(repo, log),
		Get:        usecase.NewGetLeadUseCase(repo, log),
		Stats:      usecase.NewLeadStatsUseCase(repo, log),
		MarkStatus: usecase.NewMarkLeadStatusUseCase(repo, log),
		Delete:     usecase.NewDeleteLeadUseCase(repo, log),
	}, log)
	healthHandler := handlers.NewHealthHandler(repo, broker, log)

	// 4. HTTP
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(leadHandler, healthHandler, cfg.CORSOrigins, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// openStore connects the configured driver and makes sure the email unique
// index exists. An index failure is logged, not fatal.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (entity.LeadRepositoryInterface, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := database.NewPostgresLeadRepository(db, cfg.StoreTimeout)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Warn("could not ensure leads schema", zap.Error(err))
		}
		log.Info("connected to postgres")
		return repo, func() { db.Close() }, nil

	default:
		client, err := database.NewMongoClient(ctx, cfg.MongoURL)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.DBName).Collection(database.LeadsCollection)
		repo := database.NewMongoLeadRepository(coll, cfg.StoreTimeout)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn("could not create lead indexes", zap.Error(err))
		}
		log.Info("connected to mongodb", zap.String("database", cfg.DBName))
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Warn("mongo disconnect", zap.Error(err))
			}
		}
		return repo, closeFn, nil
	}
}
