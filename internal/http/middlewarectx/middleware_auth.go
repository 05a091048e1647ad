// Package middlewarectx содержит HTTP middleware проверки доступа.
//
// JWTMiddleware проверяет bearer-токен в заголовке Authorization локально,
// по общему секрету, и в случае успеха кладёт id пользователя в контекст.
// Обработчики читают его только через UserIDFromContext.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/feature-analytics/internal/http/response"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/jwt"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/sl"
)

type ctxKey struct{}

var userIDKey ctxKey

const bearerScheme = "bearer"

// TokenParser проверяет токен и возвращает его claims.
type TokenParser interface {
	ParseToken(token string) (*jwt.CustomClaims, error)
}

// WithUserID возвращает копию ctx с id пользователя.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext возвращает id пользователя, положенный JWTMiddleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id > 0
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Отсутствующий заголовок даёт AUTH_HEADER_MISSING, заголовок без токена даёт
// TOKEN_MISSING, всё остальное, что не прошло проверку, даёт INVALID_TOKEN.
// Все три ответа имеют статус 401.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := sl.ForRequest(log, op, r)

			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				log.Warn("authorization header missing")
				response.Render(w, r, http.StatusUnauthorized,
					response.Error(response.CodeAuthHeaderMissing, "Authorization header is missing"))
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) < 2 {
				log.Warn("token missing in authorization header")
				response.Render(w, r, http.StatusUnauthorized,
					response.Error(response.CodeTokenMissing, "Token is missing from authorization header"))
				return
			}
			scheme := parts[0]
			if !strings.EqualFold(scheme, bearerScheme) || len(parts) > 2 {
				log.Warn("unsupported authorization header", slog.String("scheme", scheme))
				response.Render(w, r, http.StatusUnauthorized,
					response.Error(response.CodeInvalidToken, "Invalid or expired token"))
				return
			}

			claims, err := parser.ParseToken(parts[1])
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				response.Render(w, r, http.StatusUnauthorized,
					response.Error(response.CodeInvalidToken, "Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}
