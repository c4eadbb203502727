package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"refdataservice/internal/config"
	"refdataservice/internal/refdata"
	"refdataservice/internal/repository"
	"refdataservice/internal/service"
	"refdataservice/internal/worker"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg         *config.Config
	logger      *zap.SugaredLogger
	slot        refdata.Slot
	bolt        *repository.BoltSlot
	db          *sql.DB
	rdbState    *redis.Client
	rdbAsynq    *redis.Client
	asynqClient *asynq.Client
	asynqServer *asynq.Server
	asynqMux    *asynq.ServeMux
	asynqmon    *asynqmon.HTTPHandler
	svc         *service.RefDataService
	httpServer  *http.Server
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initStorage(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.close()
		return nil, err
	}

	return app, nil
}

// close releases the slot backend and Redis connections
func (app *App) close() error {
	var errs []error
	if app.asynqmon != nil {
		if err := app.asynqmon.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynqmon close: %w", err))
		}
	}
	if app.asynqClient != nil {
		if err := app.asynqClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynq client close: %w", err))
		}
	}
	if app.rdbAsynq != nil {
		if err := app.rdbAsynq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis asynq close: %w", err))
		}
	}
	if app.rdbState != nil {
		if err := app.rdbState.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis state close: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}
	if app.bolt != nil {
		if err := app.bolt.Close(); err != nil {
			errs = append(errs, fmt.Errorf("bolt close: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (app *App) initStorage() error {
	key := app.cfg.Storage.SlotKey

	switch app.cfg.Storage.Driver {
	case config.DriverMemory:
		app.slot = repository.NewMemorySlot()
		app.logger.Warnw("Using in-memory storage, data is lost on restart")

	case config.DriverBolt:
		slot, err := repository.NewBoltSlot(app.cfg.Storage.BoltPath, key)
		if err != nil {
			return fmt.Errorf("open bolt file %s: %w", app.cfg.Storage.BoltPath, err)
		}
		app.bolt = slot
		app.slot = slot
		app.logger.Infow("Opened bolt storage", "path", app.cfg.Storage.BoltPath)

	case config.DriverRedis:
		app.rdbState = redis.NewClient(&redis.Options{
			Addr: app.cfg.Redis.StateAddr,
		})
		if err := app.rdbState.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("connect to Redis (state, %s): %w", app.cfg.Redis.StateAddr, err)
		}
		app.slot = repository.NewRedisSlot(app.rdbState, key)
		app.logger.Infow("Connected to Redis state", "addr", app.cfg.Redis.StateAddr)

	case config.DriverPostgres:
		db, err := repository.NewPostgresDB(&app.cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to Postgres: %w", err)
		}
		app.db = db

		if err := repository.RunMigrations(app.db, app.logger); err != nil {
			return fmt.Errorf("run DB migrations: %w", err)
		}
		app.slot = repository.NewPostgresSlot(app.db, key)

	default:
		return fmt.Errorf("unknown storage driver %q", app.cfg.Storage.Driver)
	}

	return nil
}

func (app *App) initServices() error {
	store := refdata.NewStore(app.slot)
	resolver := refdata.NewResolver(store)

	var enqueuer service.Enqueuer
	if app.cfg.Worker.Enabled {
		redisOpt := asynq.RedisClientOpt{Addr: app.cfg.Redis.AsynqAddr}

		app.rdbAsynq = redis.NewClient(&redis.Options{Addr: app.cfg.Redis.AsynqAddr})
		app.asynqClient = asynq.NewClient(redisOpt)
		app.asynqServer = asynq.NewServer(
			redisOpt,
			asynq.Config{
				Concurrency:              app.cfg.Worker.Concurrency,
				DelayedTaskCheckInterval: time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
				TaskCheckInterval:        time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
			},
		)
		app.logger.Infow("Asynq configured", "addr", app.cfg.Redis.AsynqAddr, "concurrency", app.cfg.Worker.Concurrency)

		enqueuer = worker.NewAsynqEnqueuer(
			app.asynqClient,
			app.cfg.Worker.MaxRetry,
			time.Duration(app.cfg.Worker.TimeoutSec)*time.Second,
		)

		if app.cfg.Server.ServeAsynqmon {
			app.asynqmon = asynqmon.New(asynqmon.Options{
				RootPath:     "/monitoring",
				RedisConnOpt: redisOpt,
			})
		}
	}

	app.svc = service.NewRefDataService(store, resolver, enqueuer, app.logger)

	if app.asynqServer != nil {
		app.asynqMux = asynq.NewServeMux()
		app.asynqMux.HandleFunc(service.TaskTypeRelay, worker.NewRelayHandler(app.svc, app.logger))
	}

	app.initHTTP(app.svc)
	return nil
}

// Run starts the HTTP server and, when enabled, the Asynq worker, blocking until the
// context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if app.asynqServer != nil {
		g.Go(func() error {
			app.logger.Infow("Starting Asynq worker server")
			if err := app.asynqServer.Start(app.asynqMux); err != nil {
				return fmt.Errorf("asynq worker failed to start: %w", err)
			}

			<-ctx.Done()
			return nil
		})
	}

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown: triggered by context cancellation (signal or component failure).
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown performs ordered teardown: HTTP server -> Asynq worker -> connections.
// In-flight relays finish before the slot backend closes.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if app.asynqServer != nil {
		app.asynqServer.Shutdown()
	}

	if err := app.close(); err != nil {
		app.logger.Errorw("Connection cleanup errors", "error", err)
		errs = append(errs, err)
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
