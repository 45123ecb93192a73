// Package metrics names the service metrics and registers them on a collector.
package metrics

import (
	"github.com/haguru/bugtracker/internal/interfaces"
)

const (
	HTTPRequestsTotal   = "http_requests_total"
	HTTPRequestDuration = "http_request_duration_seconds"
	UsersRegistered     = "users_registered_total"
	LoginSuccess        = "login_success_total"
	LoginFailed         = "login_failed_total"
	BugsReported        = "bugs_reported_total"
	BugsClassified      = "bugs_classified_total"
	RateLimited         = "rate_limited_total"
	RoleCacheLookups    = "role_cache_lookups_total"
	DatabaseUp          = "database_up"
)

// Label values for RoleCacheLookups.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// RequestDurationBuckets are the latency buckets, in seconds, for HTTPRequestDuration.
var RequestDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// RegisterServiceMetrics registers every metric the service reports.
func RegisterServiceMetrics(m interfaces.Metrics) {
	m.RegisterCounterVec(HTTPRequestsTotal, "Total number of HTTP requests", []string{"route", "method", "code"})
	m.RegisterHistogramVec(HTTPRequestDuration, "HTTP request latency", RequestDurationBuckets, []string{"route"})

	m.RegisterCounter(UsersRegistered, "Total number of registered users")
	m.RegisterCounter(LoginSuccess, "Total number of successful logins")
	m.RegisterCounter(LoginFailed, "Total number of failed logins")
	m.RegisterCounter(BugsReported, "Total number of reported bugs")
	m.RegisterCounterVec(BugsClassified, "Total number of bug classifications", []string{"classification"})

	m.RegisterCounterVec(RateLimited, "Total number of rate limited requests", []string{"route"})
	m.RegisterCounterVec(RoleCacheLookups, "Role cache lookups by result", []string{"result"})
	m.RegisterGauge(DatabaseUp, "1 when the last database ping succeeded")
}
