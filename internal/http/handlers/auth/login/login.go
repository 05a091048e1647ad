// Package login реализует HTTP-обработчик входа пользователя.
//
// При успешной проверке email и пароля возвращает JWT, которым затем
// подписываются запросы к защищённым маршрутам.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/feature-analytics/internal/http/response"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/sl"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/validation"
	services "github.com/magabrotheeeer/feature-analytics/internal/services/auth"
)

// Request входные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service описывает проверку учётных данных и выпуск токена.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Handler обрабатывает POST /api/auth/login.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := sl.ForRequest(h.log, op, r)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest,
			response.Error(response.CodeInvalidRequestBody, "Invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Validation(
			"Email and password are required", validation.Required(validation.Failed(err))))
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		log.Info("invalid credentials")
		response.Render(w, r, http.StatusUnauthorized,
			response.Error(response.CodeInvalidCredentials, "Invalid email or password"))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Internal())
		return
	}

	log.Info("login success")
	response.Render(w, r, http.StatusOK, response.Success(map[string]any{
		"token": token,
	}, "Login successful"))
}
