package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgmetrics "github.com/haguru/bugtracker/pkg/metrics"
)

func TestRegisterServiceMetrics(t *testing.T) {
	m := pkgmetrics.NewMetrics("test_service")
	RegisterServiceMetrics(m)

	m.IncCounter(UsersRegistered)
	m.IncCounterVec(HTTPRequestsTotal, "/api/bug/list", "GET", "200")
	m.IncCounterVec(BugsClassified, "approved")
	m.IncCounterVec(RoleCacheLookups, CacheHit)
	m.ObserveHistogramVec(HTTPRequestDuration, 0.02, "/api/bug/list")
	m.SetGauge(DatabaseUp, 1)

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, family := range families {
		names[family.GetName()] = true
	}
	for _, want := range []string{
		"test_service_users_registered_total",
		"test_service_http_requests_total",
		"test_service_bugs_classified_total",
		"test_service_role_cache_lookups_total",
		"test_service_http_request_duration_seconds",
		"test_service_database_up",
	} {
		assert.True(t, names[want], "missing %s", want)
	}
}

func TestRegisterServiceMetricsTwicePanics(t *testing.T) {
	m := pkgmetrics.NewMetrics("test_service")
	RegisterServiceMetrics(m)
	assert.Panics(t, func() { RegisterServiceMetrics(m) })
}
