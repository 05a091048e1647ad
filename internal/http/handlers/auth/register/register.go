// Package register реализует HTTP-обработчик регистрации пользователя.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/feature-analytics/internal/http/response"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/password"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/sl"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/validation"
	"github.com/magabrotheeeer/feature-analytics/internal/models"
	"github.com/magabrotheeeer/feature-analytics/internal/storage/repository"
)

// Request входные данные для регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service описывает создание пользователя.
type Service interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
}

// Handler обрабатывает POST /api/auth/register.
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
	const op = "handlers.auth.register"
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
		failed := validation.Failed(err)
		if missing := validation.Required(failed); len(missing) > 0 {
			log.Info("required fields missing", sl.Err(err))
			response.Render(w, r, http.StatusBadRequest,
				response.Validation("Email and password are required", missing))
			return
		}
		if _, bad := failed["email"]; bad {
			log.Info("invalid email format")
			response.Render(w, r, http.StatusBadRequest,
				response.Error(response.CodeInvalidEmail, "Invalid email format"))
			return
		}
		log.Error("validation failed", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Validation("Invalid request", nil))
		return
	}

	if len(req.Password) > password.MaxBytes {
		log.Info("password too long")
		response.Render(w, r, http.StatusBadRequest, response.Error(response.CodeWeakPassword,
			fmt.Sprintf("Password must not exceed %d bytes", password.MaxBytes)))
		return
	}
	if !password.IsStrong(req.Password) {
		log.Info("weak password")
		response.Render(w, r, http.StatusBadRequest, response.Error(response.CodeWeakPassword,
			"Password must be at least 8 characters long and contain uppercase, lowercase, number and special character"))
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, repository.ErrUserExists) {
		log.Info("email already registered")
		response.Render(w, r, http.StatusBadRequest,
			response.Error(response.CodeUserExists, "User with this email already exists"))
		return
	}
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Internal())
		return
	}

	log.Info("user registered", slog.Int("user_id", user.ID))
	response.Render(w, r, http.StatusCreated, response.Success(map[string]any{
		"user": user.Public(),
	}, "User registered successfully"))
}
