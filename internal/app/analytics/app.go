package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/feature-analytics/internal/cache"
	"github.com/magabrotheeeer/feature-analytics/internal/config"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/jwt"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/sl"
	"github.com/magabrotheeeer/feature-analytics/internal/metrics"
	"github.com/magabrotheeeer/feature-analytics/internal/migrations"
	analyticsservice "github.com/magabrotheeeer/feature-analytics/internal/services/analytics"
	authservice "github.com/magabrotheeeer/feature-analytics/internal/services/auth"
	"github.com/magabrotheeeer/feature-analytics/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App владеет HTTP-сервером и его ресурсами.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New подключается к хранилищам, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.analytics.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	version, err := migrations.Run(db.DB, cfg.MigrationsPath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("migrations applied", slog.Uint64("version", uint64(version)))

	m := metrics.New()
	opts := []analyticsservice.Option{analyticsservice.WithRecorder(m)}

	var cacheRedis *cache.Cache
	if cfg.CacheEnabled() {
		cacheRedis, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, analytics cache disabled", sl.Err(err))
		} else {
			opts = append(opts, analyticsservice.WithCache(cacheRedis, cfg.CacheTTL))
		}
	}

	tokens := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:    logger,
		Analytics: analyticsservice.NewService(db, logger, opts...),
		Auth:      authservice.NewAuthService(db, tokens),
		Tokens:    tokens,
		DB:        db,
		Metrics:   m,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run обслуживает запросы до отмены ctx, после чего корректно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
}
