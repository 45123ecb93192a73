package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, m *Metrics, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	t.Fatalf("metric family %s not gathered", name)
	return nil
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics("bug-tracker").(*Metrics)
	m.RegisterCounter("users_registered_total", "registrations")
	m.RegisterCounterVec("http_requests_total", "requests", []string{"route", "code"})

	m.IncCounter("users_registered_total")
	m.IncCounter("users_registered_total")
	m.IncCounterVec("http_requests_total", "/api/bug/list", "200")

	// unknown names are ignored
	m.IncCounter("missing")
	m.IncCounterVec("missing", "a")

	registered := gatherFamily(t, m, "bug_tracker_users_registered_total")
	assert.Equal(t, float64(2), registered.GetMetric()[0].GetCounter().GetValue())

	requests := gatherFamily(t, m, "bug_tracker_http_requests_total")
	require.Len(t, requests.GetMetric(), 1)
	assert.Equal(t, float64(1), requests.GetMetric()[0].GetCounter().GetValue())
}

func TestMetricsGauge(t *testing.T) {
	m := NewMetrics("bug-tracker").(*Metrics)
	m.RegisterGauge("database_up", "database reachability")
	m.SetGauge("database_up", 1)
	m.SetGauge("missing", 1)

	up := gatherFamily(t, m, "bug_tracker_database_up")
	assert.Equal(t, float64(1), up.GetMetric()[0].GetGauge().GetValue())
}

func TestMetricsHistogramVec(t *testing.T) {
	m := NewMetrics("svc").(*Metrics)
	m.RegisterHistogramVec("http_request_duration_seconds", "latency", []float64{0.1, 1}, []string{"route"})
	m.ObserveHistogramVec("http_request_duration_seconds", 0.05, "/healthz")
	m.ObserveHistogramVec("missing", 0.05, "/healthz")

	latency := gatherFamily(t, m, "svc_http_request_duration_seconds")
	require.Len(t, latency.GetMetric(), 1)
	assert.Equal(t, uint64(1), latency.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestSanitizeNamespace(t *testing.T) {
	assert.Equal(t, "bug_tracker_v2", sanitizeNamespace("bug-tracker.v2"))
	assert.Equal(t, "bugtracker", sanitizeNamespace("bugtracker"))
}
