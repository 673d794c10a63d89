package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"example.com/noteapp/internal/api"
	"example.com/noteapp/internal/config"
	"example.com/noteapp/internal/db"
	"example.com/noteapp/internal/logger"
	"example.com/noteapp/internal/notes"
	"example.com/noteapp/internal/service"
	"example.com/noteapp/internal/shutdown"
	"example.com/noteapp/internal/store/memory"
	"example.com/noteapp/internal/store/mongodb"
	"example.com/noteapp/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	env := logger.Production
	if cfg.AppEnv == string(logger.Development) {
		env = logger.Development
	}
	lg, err := logger.NewLogger(env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()
	logger.SetGlobal(lg)

	ctx := logger.NewContext(context.Background(), lg)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		lg.Fatal(ctx, "failed to open store", zap.String("backend", cfg.Backend), zap.Error(err))
	}

	handlers := api.NewHandlers(service.New(store), lg, api.Options{
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handlers.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info(ctx, "server running", zap.String("addr", cfg.HTTPAddr()), zap.String("backend", cfg.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal(ctx, "server stopped", zap.Error(err))
		}
	}()

	err = shutdown.Wait(cfg.ShutdownTimeout,
		func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return closeStore(ctx)
		},
	)
	if err != nil {
		lg.Error(ctx, "shutdown finished with errors", zap.Error(err))
		return
	}
	lg.Info(ctx, "shutdown complete")
}

// openStore returns the configured backend and a function releasing its connection.
func openStore(ctx context.Context, cfg config.Config) (notes.Store, shutdown.Hook, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := db.OpenPostgres(ctx, cfg.DatabaseURL, db.PostgresOptions{
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		})
		if err != nil {
			return nil, nil, err
		}
		st := postgres.New(pool)
		if err := st.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return st, func(context.Context) error { pool.Close(); return nil }, nil

	case config.BackendMongo:
		client, err := db.OpenMongo(ctx, cfg.MongoConnString())
		if err != nil {
			return nil, nil, err
		}
		return mongodb.NewFromClient(client, cfg.MongoDatabase), client.Disconnect, nil

	case config.BackendMemory:
		return memory.New(), func(context.Context) error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
