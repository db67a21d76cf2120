package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/vokabel-backend/internal/adapter/postgres"
	reviewlogrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/reviewlog"
	tokenrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/user"
	vocabularyrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/vocabulary"
	jwtauth "github.com/heartmarshall/vokabel-backend/internal/auth"
	"github.com/heartmarshall/vokabel-backend/internal/config"
	authsvc "github.com/heartmarshall/vokabel-backend/internal/service/auth"
	learningsvc "github.com/heartmarshall/vokabel-backend/internal/service/learning"
	statssvc "github.com/heartmarshall/vokabel-backend/internal/service/stats"
	vocabularysvc "github.com/heartmarshall/vokabel-backend/internal/service/vocabulary"
	"github.com/heartmarshall/vokabel-backend/internal/transport/middleware"
	"github.com/heartmarshall/vokabel-backend/internal/transport/rest"
	"github.com/heartmarshall/vokabel-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and HTTP handlers, and serves
// until the context is cancelled. On shutdown the HTTP server drains first,
// then the learning service flushes in-flight status updates.
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

	if cfg.Database.Migrate {
		if err := migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	items := vocabularyrepo.New(pool)
	reviews := reviewlogrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	// Services.
	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, users, tokens, txm, jwtManager, cfg.Auth)
	vocabularyService := vocabularysvc.NewService(logger, items)
	learningService := learningsvc.NewService(logger, items, reviews, learningsvc.Config{
		Cooldown:   cfg.Mastery.Cooldown,
		SessionTTL: cfg.Mastery.SessionTTL,
	})
	defer learningService.Close()
	statsService := statssvc.NewService(logger, items, reviews, users, cfg.Stats)

	// HTTP transport.
	router := rest.NewRouter(rest.Handlers{
		Auth:       rest.NewAuthHandler(authService, logger),
		Vocabulary: rest.NewVocabularyHandler(vocabularyService, logger),
		Learning:   rest.NewLearningHandler(learningService, logger),
		Stats:      rest.NewStatsHandler(statsService, logger),
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
	})

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer rateLimiter.Stop()
		mws = append(mws, rateLimiter.Limit(cfg.RateLimit.PerMinute))
	}
	mws = append(mws, middleware.Auth(authService))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      middleware.Chain(mws...)(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	return nil
}

// migrate applies embedded goose migrations via database/sql.
func migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	results, err := provider.Up(migrateCtx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		logger.Info("applied migration",
			slog.String("migration", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}
