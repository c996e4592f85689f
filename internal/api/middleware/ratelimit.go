package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

// RateLimit ограничивает общий поток запросов к сервису
// Запросы сверх лимита получают 429 Too Many Requests
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, "превышен лимит запросов")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
