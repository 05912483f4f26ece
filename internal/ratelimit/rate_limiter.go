package ratelimit

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/syscommerce/internal/syncx"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per client key.
type RateLimiter struct {
	rate    rate.Limit
	burst   int
	clients syncx.Map[string, *rate.Limiter]
}

type GetClientKeyFunc func(w http.ResponseWriter, r *http.Request) (string, error)

func (l *RateLimiter) Allow(key string) bool {
	limiter, _ := l.clients.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	return limiter.Allow()
}

func (l *RateLimiter) Middleware(getClientKey GetClientKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			clientKey, err := getClientKey(w, r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve client key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !l.Allow(clientKey) {
				slog.WarnContext(ctx, "rate limit exceeded", slog.String("client", clientKey))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func New(rate rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate,
		burst: burst,
	}
}
