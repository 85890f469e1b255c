package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"hotel-audit-pro/internal/appstate"
	"hotel-audit-pro/internal/auth"
	"hotel-audit-pro/internal/config"
	"hotel-audit-pro/internal/httpapi"
	"hotel-audit-pro/internal/persist"
	"hotel-audit-pro/internal/reporting"
	"hotel-audit-pro/internal/session"
	"hotel-audit-pro/internal/store"
	"hotel-audit-pro/pkg/logger"
	"hotel-audit-pro/pkg/utils"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(rootCtx, stop, cfg, log); err != nil {
		log.Error("api stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stop context.CancelFunc, cfg config.Config, log *slog.Logger) error {
	clock := clockwork.NewRealClock()

	var rdb *redis.Client
	if cfg.NeedsRedis() {
		c, err := utils.OpenRedis(ctx, utils.RedisConfig{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("redis init: %w", err)
		}
		defer c.Close()
		rdb = c
	}

	st, closeStore, err := openStore(ctx, cfg, rdb)
	if err != nil {
		return err
	}
	defer closeStore()

	var sessions session.Store = session.NewMemory(clock)
	if cfg.Session.Driver == config.DriverRedis {
		sessions = session.NewRedis(rdb, cfg.Store.Prefix, clock)
	}

	tokens, err := auth.NewManager(cfg.Auth)
	if err != nil {
		return fmt.Errorf("auth init: %w", err)
	}

	app := appstate.New(st, sessions, appstate.Options{
		Persist: persist.Options{
			Debounce:     cfg.Sync.Debounce,
			SavingHold:   cfg.Sync.SavingHold,
			WriteTimeout: cfg.Sync.WriteTimeout,
			Clock:        clock,
		},
		Logger: log,
	})

	// Hydration runs in the background; /readyz reports when it settles.
	go func() {
		if err := app.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("hydration aborted", "err", err)
		}
	}()

	h := httpapi.Handlers{
		App:     app,
		Auth:    auth.NewService(tokens, sessions, app, clock),
		Reports: reporting.NewService(app, cfg.Analytics.BaselineScore),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	registerRoutes(r, h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "store", cfg.Store.Driver, "sessions", cfg.Session.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
	// pending debounced writes go out before the store closes
	app.Stop(shutdownCtx)
	return nil
}

// openStore builds the configured object store. The returned func releases
// its connections.
func openStore(ctx context.Context, cfg config.Config, rdb *redis.Client) (store.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverRedis:
		return store.NewRedis(rdb, cfg.Store.Prefix), func() {}, nil

	case config.DriverPostgres:
		pool, err := utils.OpenPgxPool(ctx, cfg.PostgresDSN(), utils.PgxPoolConfig{})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres init: %w", err)
		}
		return store.NewPostgres(pool), pool.Close, nil

	case config.DriverMySQL:
		db, err := utils.OpenSQL(ctx, "mysql", cfg.MySQLDSN(), utils.SQLPoolConfig{})
		if err != nil {
			return nil, nil, fmt.Errorf("mysql init: %w", err)
		}
		return store.NewMySQL(db), func() { _ = db.Close() }, nil

	case config.DriverMongo:
		client, err := utils.OpenMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo init: %w", err)
		}
		disconnect := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}
		return store.NewMongo(client.Database(cfg.Mongo.Database)), disconnect, nil

	default:
		return store.NewMemory(), func() {}, nil
	}
}
