// Package health реализует проверку готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/feature-analytics/internal/http/response"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/sl"
)

const pingTimeout = 2 * time.Second

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает GET /healthz.
type Handler struct {
	log *slog.Logger
	db  Pinger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, db Pinger) *Handler {
	return &Handler{
		log: log,
		db:  db,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		sl.ForRequest(h.log, op, r).Error("storage is unavailable", sl.Err(err))
		response.Render(w, r, http.StatusServiceUnavailable,
			response.Error(response.CodeServiceUnavailable, "Storage is unavailable"))
		return
	}
	response.Render(w, r, http.StatusOK, response.Success(nil, "ok"))
}
