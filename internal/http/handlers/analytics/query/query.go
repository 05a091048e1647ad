// Package query реализует HTTP-обработчик выборки аналитики использования функций.
//
// Обработчик берёт id пользователя из контекста, разбирает фильтр из строки
// запроса и возвращает найденные записи в едином конверте с meta.
package query

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/feature-analytics/internal/http/middlewarectx"
	"github.com/magabrotheeeer/feature-analytics/internal/http/response"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/queryfilter"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/sl"
	"github.com/magabrotheeeer/feature-analytics/internal/models"
	analytics "github.com/magabrotheeeer/feature-analytics/internal/services/analytics"
)

// MsgSuccess сообщение успешного ответа.
const MsgSuccess = "Analytics data retrieved successfully"

// Service описывает выполнение запроса аналитики.
type Service interface {
	Query(ctx context.Context, userID int, filter models.Filter) ([]models.FeatureUsage, error)
}

// Handler обрабатывает GET /api/analytics.
type Handler struct {
	log     *slog.Logger
	service Service
	parser  *queryfilter.Parser
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		parser:  queryfilter.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.query"
	log := sl.ForRequest(h.log, op, r)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id missing in context")
		response.Render(w, r, http.StatusUnauthorized,
			response.Error(response.CodeInvalidToken, "Invalid or expired token"))
		return
	}

	filter, err := h.parser.Parse(r.URL.RawQuery)
	if err != nil {
		var verr *queryfilter.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Info("invalid query parameters", sl.Err(err))
			response.Render(w, r, http.StatusBadRequest,
				response.Validation("Invalid query parameters", verr.Fields))
		case errors.Is(err, queryfilter.ErrMalformedQuery):
			log.Info("malformed query string", sl.Err(err))
			response.Render(w, r, http.StatusBadRequest,
				response.Validation("Malformed query string", nil))
		default:
			log.Error("failed to validate filter", sl.Err(err))
			response.Render(w, r, http.StatusInternalServerError, response.Internal())
		}
		return
	}

	records, err := h.service.Query(r.Context(), userID, filter)
	if err != nil {
		log.Error("failed to query analytics", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Internal())
		return
	}

	log.Info("analytics returned", slog.Int("user_id", userID), slog.Int("count", len(records)))
	response.Render(w, r, http.StatusOK,
		response.Success(records, MsgSuccess).WithMeta(len(records), analytics.MaxItems))
}
