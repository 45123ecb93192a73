package metrics

import (
	"strings"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a flexible Prometheus metrics collector. Every metric is
// registered under the service namespace. Operations on unknown names are no-ops.
type Metrics struct {
	Registry      *prometheus.Registry
	namespace     string
	counters      map[string]prometheus.Counter
	counterVecs   map[string]*prometheus.CounterVec
	histogramVecs map[string]*prometheus.HistogramVec
	gauges        map[string]prometheus.Gauge
}

// NewMetrics creates a new flexible Metrics instance.
func NewMetrics(serviceName string) interfaces.Metrics {
	registry := prometheus.NewRegistry()
	return &Metrics{
		Registry:      registry,
		namespace:     sanitizeNamespace(serviceName),
		counters:      make(map[string]prometheus.Counter),
		counterVecs:   make(map[string]*prometheus.CounterVec),
		histogramVecs: make(map[string]*prometheus.HistogramVec),
		gauges:        make(map[string]prometheus.Gauge),
	}
}

// GetRegistry returns the Prometheus registry.
func (m *Metrics) GetRegistry() *prometheus.Registry {
	return m.Registry
}

// RegisterCounter registers a new counter metric.
func (m *Metrics) RegisterCounter(name, help string) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	})
	m.Registry.MustRegister(counter)
	m.counters[name] = counter
}

// RegisterCounterVec registers a new counter metric with labels.
func (m *Metrics) RegisterCounterVec(name, help string, labels []string) {
	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}, labels)
	m.Registry.MustRegister(counterVec)
	m.counterVecs[name] = counterVec
}

// RegisterHistogramVec registers a new histogram metric with labels.
func (m *Metrics) RegisterHistogramVec(name, help string, buckets []float64, labels []string) {
	histogramVec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
	m.Registry.MustRegister(histogramVec)
	m.histogramVecs[name] = histogramVec
}

// RegisterGauge registers a new gauge metric.
func (m *Metrics) RegisterGauge(name, help string) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	})
	m.Registry.MustRegister(gauge)
	m.gauges[name] = gauge
}

// IncCounter increments a counter by 1.
func (m *Metrics) IncCounter(name string) {
	if counter, ok := m.counters[name]; ok {
		counter.Inc()
	}
}

// IncCounterVec increments a counter in a CounterVec with labels.
func (m *Metrics) IncCounterVec(name string, labels ...string) {
	if counterVec, ok := m.counterVecs[name]; ok {
		counterVec.WithLabelValues(labels...).Inc()
	}
}

// ObserveHistogramVec observes a value in a histogram with labels.
func (m *Metrics) ObserveHistogramVec(name string, value float64, labels ...string) {
	if histogramVec, ok := m.histogramVecs[name]; ok {
		histogramVec.WithLabelValues(labels...).Observe(value)
	}
}

// SetGauge sets a gauge to a specific value.
func (m *Metrics) SetGauge(name string, value float64) {
	if gauge, ok := m.gauges[name]; ok {
		gauge.Set(value)
	}
}

// sanitizeNamespace maps a service name onto the prometheus metric name alphabet.
func sanitizeNamespace(serviceName string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, serviceName)
}
