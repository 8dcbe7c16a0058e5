package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/usecase/consumer"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/usecase/dispatch"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/usecase/outbox"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/usecase/outcome"
	playerUseCase "github.com/amirhossein-jamali/spin-engine/internal/domain/usecase/player"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/usecase/spin"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/memory"
	messagingAdapter "github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/messaging"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/random"
	timeProvider "github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/config"
)

const memoryBusCapacity = 1024

func main() {
	// Load and validate configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logger.Options{
		Production: cfg.Logger.Format == "json",
		Level:      cfg.Logger.Level,
		Output:     cfg.Logger.Output,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
		Compress:   cfg.Logger.Compress,
	})

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service terminated with error", map[string]any{
			"error": err.Error(),
		})
		_ = appLogger.Flush()
		os.Exit(1)
	}

	appLogger.Info("Server exited gracefully", nil)
	_ = appLogger.Flush()
}

// storage bundles the unit of work with the optional SQL manager behind it
type storage struct {
	uow     persistence.UnitOfWork
	manager *database.Manager // nil for the memory driver
}

func run(cfg *config.Config, appLogger coreport.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := timeProvider.NewRealTimeProvider()

	var appMetrics coreport.Metrics = metrics.NewNoopMetrics()
	var promMetrics *metrics.PrometheusMetrics
	if cfg.Metrics.Enabled {
		promMetrics = metrics.NewPrometheusMetrics()
		appMetrics = promMetrics
	}

	store, err := openStorage(ctx, cfg, appLogger, tp)
	if err != nil {
		return err
	}
	if store.manager != nil {
		defer store.manager.Close()
		if promMetrics != nil {
			if err := promMetrics.RegisterDBStats(store.manager.SQLDB(), cfg.Database.Database); err != nil {
				appLogger.Warn("Failed to register database pool metrics", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	// Domain services
	policy, err := outcome.ParsePolicy(cfg.Game.WinProbability, cfg.Game.PayoutMultiplier)
	if err != nil {
		return fmt.Errorf("game policy: %w", err)
	}
	generator, err := outcome.NewGenerator(random.NewCryptoSource(), policy)
	if err != nil {
		return fmt.Errorf("outcome generator: %w", err)
	}

	playerLedger := ledger.NewLedger(store.uow, tp, appLogger)
	eventOutbox := outbox.NewOutbox(store.uow, tp, cfg.Bus.Topic)
	serializer := spin.NewPlayerSerializer(appLogger, tp, spin.SerializerConfig{
		QueueSize:    cfg.Spin.QueueSize,
		QueueTimeout: coreport.Duration(cfg.Spin.QueueTimeout),
		IdleTimeout:  coreport.Duration(cfg.Spin.IdleTimeout),
	})
	engine := spin.NewEngine(store.uow, playerLedger, eventOutbox, generator, serializer, tp, appLogger, appMetrics)
	players := playerUseCase.NewPlayerUseCase(store.uow, tp, appLogger)

	if len(cfg.Seed.Players) > 0 {
		seeded, err := players.SeedPlayers(ctx, cfg.Seed.Players)
		if err != nil {
			return fmt.Errorf("seed players: %w", err)
		}
		for _, p := range seeded {
			appLogger.Info("Seed player ready", map[string]any{
				"player_id": p.ID,
				"balance":   p.Balance(),
			})
		}
	}

	bus, subscriber, err := openBus(cfg, appLogger)
	if err != nil {
		return err
	}
	defer bus.Close()

	// HTTP surface
	var pinger handler.Pinger
	if store.manager != nil {
		pinger = store.manager
	}
	routeHandlers := routes.Handlers{
		Player: handler.NewPlayerHandler(players, appLogger),
		Spin:   handler.NewSpinHandler(engine, appLogger),
		Health: handler.NewHealthHandler(pinger, 2*time.Second, appLogger),
	}
	if promMetrics != nil {
		routeHandlers.MetricsPath = cfg.Metrics.Path
		routeHandlers.Metrics = promMetrics.Handler()
	}
	router := routes.NewRouter(appLogger, cfg.CORS.AllowedOrigins, routeHandlers)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	if cfg.Dispatcher.Enabled {
		dispatcher := dispatch.NewDispatcher(eventOutbox, bus, tp, appLogger, appMetrics, dispatch.Config{
			PollInterval:   coreport.Duration(cfg.Dispatcher.PollInterval),
			BatchSize:      cfg.Dispatcher.BatchSize,
			InitialBackoff: coreport.Duration(cfg.Dispatcher.InitialBackoff),
			MaxBackoff:     coreport.Duration(cfg.Dispatcher.MaxBackoff),
			JitterFactor:   cfg.Dispatcher.JitterFactor,
		})
		group.Go(func() error {
			return dispatcher.Run(groupCtx)
		})

		if cfg.Dispatcher.Retention > 0 {
			group.Go(func() error {
				purgeDelivered(groupCtx, eventOutbox, cfg.Dispatcher.Retention, appLogger)
				return nil
			})
		}
	}

	if cfg.Consumer.Enabled && subscriber != nil {
		spinConsumer := consumer.NewSpinEventConsumer(appLogger, appMetrics, consumer.Config{
			DedupeCacheSize: cfg.Consumer.DedupeCacheSize,
			DedupeTTL:       cfg.Consumer.DedupeTTL,
		})
		group.Go(func() error {
			return subscriber.Subscribe(groupCtx, spinConsumer)
		})
	}

	if store.manager != nil {
		group.Go(func() error {
			store.manager.MonitorPool(groupCtx)
			return nil
		})
	}

	group.Go(func() error {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info("Shutting down server...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			appLogger.Error("Server forced to shutdown", map[string]any{
				"error": err.Error(),
			})
		}

		// In-flight spins finish and commit before the workers exit
		serializer.Shutdown()
		return err
	})

	return group.Wait()
}

// openStorage connects the configured store and runs migrations
func openStorage(ctx context.Context, cfg *config.Config, appLogger coreport.Logger, tp coreport.TimeProvider) (*storage, error) {
	if cfg.Database.Driver == "memory" {
		appLogger.Warn("Using in-memory store, balances are lost on restart", nil)
		return &storage{uow: memory.NewUnitOfWork(memory.NewStore(), appLogger)}, nil
	}

	dbConfig := &database.Config{
		Driver:             cfg.Database.Driver,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Database,
		SSLMode:            cfg.Database.SSLMode,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		QueryTimeout:       cfg.Database.QueryTimeout,
		LogLevel:           cfg.Logger.Level,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
		RetryAttempts:      cfg.Database.RetryAttempts,
		RetryDelay:         cfg.Database.RetryDelay,
	}

	manager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := manager.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := manager.Migrate(ctx); err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &storage{uow: manager.CreateUnitOfWork(), manager: manager}, nil
}

// openBus builds the configured event bus and, where the transport can be read
// back in-process, the subscriber feeding the spin event consumer
func openBus(cfg *config.Config, appLogger coreport.Logger) (messaging.EventBus, messaging.Subscriber, error) {
	switch cfg.Bus.Kind {
	case "memory":
		bus := messagingAdapter.NewMemoryBus(memoryBusCapacity, appLogger)
		return bus, bus, nil

	case "redis":
		client := messagingAdapter.NewRedisClient(messagingAdapter.RedisOptions{
			Addr:         cfg.Bus.Redis.Addr,
			Password:     cfg.Bus.Redis.Password,
			DB:           cfg.Bus.Redis.DB,
			DialTimeout:  cfg.Bus.Redis.DialTimeout,
			WriteTimeout: cfg.Bus.Redis.WriteTimeout,
		})
		bus := messagingAdapter.NewRedisStreamBus(client, cfg.Bus.Redis.MaxLen, appLogger)
		subscriber := messagingAdapter.NewRedisStreamSubscriber(client, cfg.Bus.Topic, "$", cfg.Bus.Redis.ReadBlock, appLogger)
		return bus, subscriber, nil

	case "webhook":
		bus := messagingAdapter.NewWebhookBus(messagingAdapter.WebhookOptions{
			URL:        cfg.Bus.Webhook.URL,
			Timeout:    cfg.Bus.Webhook.Timeout,
			RetryCount: cfg.Bus.Webhook.RetryCount,
			Headers:    cfg.Bus.Webhook.Headers,
		}, appLogger)
		return bus, nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported bus kind %q", cfg.Bus.Kind)
	}
}

// purgeDelivered removes delivered outbox entries older than retention until ctx is done
func purgeDelivered(ctx context.Context, eventOutbox *outbox.Outbox, retention time.Duration, appLogger coreport.Logger) {
	interval := min(retention, time.Hour)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := eventOutbox.PurgeDelivered(ctx, coreport.Duration(retention))
			if err != nil {
				appLogger.Warn("Outbox purge failed", map[string]any{"error": err.Error()})
				continue
			}
			if purged > 0 {
				appLogger.Info("Purged delivered outbox entries", map[string]any{
					"count":     purged,
					"retention": retention.String(),
				})
			}
		}
	}
}
