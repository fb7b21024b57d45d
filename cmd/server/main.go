package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	web "fittrack/internal/adapters/http"
	"fittrack/internal/adapters/http/middleware"
	"fittrack/internal/adapters/storage"
	assignmentStore "fittrack/internal/adapters/storage/assignment"
	programStore "fittrack/internal/adapters/storage/program"
	trainerCVStore "fittrack/internal/adapters/storage/trainercv"
	userStore "fittrack/internal/adapters/storage/user"
	workoutStore "fittrack/internal/adapters/storage/workout"
	"fittrack/internal/application/orchestrators"
	"fittrack/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_invalid", "error", err.Error())
		os.Exit(1)
	}
	setupLogging(cfg)

	if err := run(cfg); err != nil {
		slog.Error("server_failed", "error", err.Error())
		os.Exit(1)
	}
}

// setupLogging installs a JSON handler in production and a text handler otherwise.
func setupLogging(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func run(cfg config.Config) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.MigrateDB(db, cfg.DBPath); err != nil {
		return err
	}

	timedDB := storage.NewTimedDB(db, cfg.SlowQuery)
	users := userStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		UserStore:       users,
		WorkoutStore:    workoutStore.NewSQLiteStore(timedDB),
		ProgramStore:    programStore.NewSQLiteStore(timedDB),
		AssignmentStore: assignmentStore.NewSQLiteStore(timedDB),
		TrainerCVStore:  trainerCVStore.NewSQLiteStore(timedDB),
	}

	// Seed configured accounts (idempotent; entries without credentials are skipped)
	seeds := make([]orchestrators.SeedAccount, 0, len(cfg.SeedAccounts))
	for _, s := range cfg.SeedAccounts {
		seeds = append(seeds, orchestrators.SeedAccount{Email: s.Email, Password: s.Password, Role: s.Role})
	}
	created, err := orchestrators.ExecuteSeedAccounts(context.Background(), seeds, orchestrators.SeedAccountsDeps{
		UserStore:  users,
		GenerateID: func() string { return uuid.New().String() },
		Now:        time.Now,
	})
	if err != nil {
		return err
	}
	if created > 0 {
		slog.Info("seed_accounts", "created", created)
	}

	var sessionStore middleware.SessionStore = middleware.NewMemorySessionStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return err
		}
		sessionStore = middleware.NewRedisSessionStore(rdb)
		slog.Info("session_store", "backend", "redis", "addr", cfg.RedisAddr)
	}

	handler := web.NewMux(stores, web.Options{
		CSRFKey:        cfg.CSRFKey,
		TrustedOrigins: cfg.TrustedOrigins,
		SecureCookies:  cfg.IsProduction(),
		Sessions:       middleware.NewSessions(sessionStore, cfg.SessionKey, cfg.IsProduction()),
		Tokens:         middleware.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		RateLimit:      cfg.RateLimit,
		SlowRequest:    cfg.SlowRequest,
		DB:             timedDB,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_started", "version", version, "addr", cfg.Addr, "env", cfg.Env, "schema", storage.LatestSchemaVersion())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
