package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/metrics"
)

// MetricsMiddleware records the request count and latency of every matched route.
func MetricsMiddleware(m interfaces.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snoop := httpsnoop.CaptureMetrics(next, w, r)

			route := routeLabel(r)
			m.IncCounterVec(metrics.HTTPRequestsTotal, route, r.Method, strconv.Itoa(snoop.Code))
			m.ObserveHistogramVec(metrics.HTTPRequestDuration, snoop.Duration.Seconds(), route)
		})
	}
}
