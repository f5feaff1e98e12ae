package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CAFxX/httpcompression"
	"github.com/msomdec/tareas/internal/config"
	"github.com/msomdec/tareas/internal/domain"
	"github.com/msomdec/tareas/internal/handler"
	"github.com/msomdec/tareas/internal/repository/jsonfile"
	"github.com/msomdec/tareas/internal/repository/postgres"
	"github.com/msomdec/tareas/internal/repository/sqlite"
	"github.com/msomdec/tareas/internal/service"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	envFile := flag.String("env", ".env", "path to a .env file loaded before reading the environment")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	ctx := context.Background()

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "driver", cfg.Driver, "error", err)
		os.Exit(1)
	}
	slog.Info("store ready", "driver", cfg.Driver)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(store.Users(), service.NewBcryptHasher(cfg.BcryptCost), tokenService)
	taskService := service.NewTaskService(store.Tasks())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, taskService)

	var h http.Handler = handler.SecurityHeaders(handler.RequestID(handler.LogRequests(handler.Recover(mux))))
	if cfg.Compress {
		compress, err := httpcompression.DefaultAdapter()
		if err != nil {
			slog.Error("failed to build compression adapter", "error", err)
			os.Exit(1)
		}
		h = compress(h)
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           h,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore opens the backend selected by cfg.Driver.
func openStore(ctx context.Context, cfg config.Store) (domain.Store, error) {
	switch cfg.Driver {
	case config.DriverFile:
		db, err := jsonfile.New(cfg.UsersFile, cfg.TasksFile)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
