package middlewarectx

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/feature-analytics/internal/http/response"
	"github.com/magabrotheeeer/feature-analytics/internal/lib/sl"
)

// RateLimitMiddleware ограничивает частоту запросов общим token bucket на rps запросов
// в секунду с запасом burst.
func RateLimitMiddleware(log *slog.Logger, rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				sl.ForRequest(log, "middlewarectx.RateLimitMiddleware", r).Warn("too many requests")
				response.Render(w, r, http.StatusTooManyRequests,
					response.Error(response.CodeRateLimited, "Too many requests, try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
