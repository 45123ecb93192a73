package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/metrics"
)

const (
	ErrTooManyRequests = "Too many requests"
	MsgTryAgainLater   = "Please try again later."
)

// RateLimitMiddleware rejects requests with 429 once limiter runs out of tokens.
// m may be nil.
func RateLimitMiddleware(limiter *rate.Limiter, m interfaces.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if m != nil {
					m.IncCounterVec(metrics.RateLimited, routeLabel(r))
				}
				writeError(w, http.StatusTooManyRequests, ErrTooManyRequests, MsgTryAgainLater)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
