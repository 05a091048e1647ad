// Package analytics собирает HTTP-приложение сервиса аналитики.
package analytics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/magabrotheeeer/feature-analytics/internal/config"
	"github.com/magabrotheeeer/feature-analytics/internal/http/handlers/analytics/query"
	"github.com/magabrotheeeer/feature-analytics/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/feature-analytics/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/feature-analytics/internal/http/handlers/auth/user"
	"github.com/magabrotheeeer/feature-analytics/internal/http/handlers/health"
	"github.com/magabrotheeeer/feature-analytics/internal/http/middlewarectx"
	"github.com/magabrotheeeer/feature-analytics/internal/metrics"
)

// AuthService объединяет операции аккаунта, нужные маршрутам.
type AuthService interface {
	register.Service
	login.Service
	user.Service
}

// Deps зависимости маршрутов.
type Deps struct {
	Logger    *slog.Logger
	Analytics query.Service
	Auth      AuthService
	Tokens    middlewarectx.TokenParser
	DB        health.Pinger
	Metrics   *metrics.Metrics
	CORS      config.CORS
	RateLimit config.RateLimit
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		d.Metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   d.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           int((12 * time.Hour).Seconds()),
		}),
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", register.New(d.Logger, d.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(d.Logger, d.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Tokens, d.Logger))
			r.Use(middlewarectx.RateLimitMiddleware(d.Logger, d.RateLimit.RPS, d.RateLimit.Burst))
			r.Get("/analytics", query.New(d.Logger, d.Analytics).ServeHTTP)
			r.Get("/auth/user", user.New(d.Logger, d.Auth).ServeHTTP)
		})
	})

	r.Get("/healthz", health.New(d.Logger, d.DB).ServeHTTP)
	r.Handle("/metrics", d.Metrics.Handler())
}
