// Package user реализует HTTP-обработчик профиля текущего пользователя.
package user

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/feature-analytics/internal/http/middlewarectx"
	"github.com/magabrotheeeer/feature-analytics/internal/http/response"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/sl"
	"github.com/magabrotheeeer/feature-analytics/internal/models"
	"github.com/magabrotheeeer/feature-analytics/internal/storage/repository"
)

// Service описывает получение пользователя по id.
type Service interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// Handler обрабатывает GET /api/auth/user.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.user"
	log := sl.ForRequest(h.log, op, r)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id missing in context")
		response.Render(w, r, http.StatusUnauthorized,
			response.Error(response.CodeInvalidToken, "Invalid or expired token"))
		return
	}

	u, err := h.service.GetUser(r.Context(), userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Info("user not found", slog.Int("user_id", userID))
		response.Render(w, r, http.StatusNotFound,
			response.Error(response.CodeUserNotFound, "User not found"))
		return
	}
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Internal())
		return
	}

	response.Render(w, r, http.StatusOK, response.Success(map[string]any{
		"user": u.Public(),
	}, "User retrieved successfully"))
}
