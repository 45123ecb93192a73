// Package health pings the database on a cron schedule and on demand.
package health

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/metrics"
)

const (
	DefaultSchedule = "@every 30s"
	DefaultTimeout  = 5 * time.Second
)

// Monitor pings the database and publishes the result on the database_up gauge.
type Monitor struct {
	db      interfaces.Pinger
	metrics interfaces.Metrics
	logger  interfaces.Logger
	timeout time.Duration

	up      atomic.Bool
	checked atomic.Bool
	mu      sync.Mutex
	cron    *cron.Cron
}

// NewMonitor creates a Monitor. m may be nil.
func NewMonitor(db interfaces.Pinger, m interfaces.Metrics, logger interfaces.Logger, timeout time.Duration) *Monitor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Monitor{db: db, metrics: m, logger: logger, timeout: timeout}
}

// Check pings the database once, bounded by the monitor timeout.
func (h *Monitor) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	err := h.db.Ping(ctx)
	healthy := err == nil
	first := !h.checked.Swap(true)
	if was := h.up.Swap(healthy); first || was != healthy {
		if healthy {
			h.logger.Info("Database is reachable")
		} else {
			h.logger.Error("Database is unreachable", "error", err)
		}
	}

	if h.metrics != nil {
		value := 0.0
		if healthy {
			value = 1
		}
		h.metrics.SetGauge(metrics.DatabaseUp, value)
	}

	if err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Start runs Check on schedule until Stop is called.
func (h *Monitor) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cron != nil {
		return fmt.Errorf("health monitor already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		_ = h.Check(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid health schedule %q: %w", schedule, err)
	}
	c.Start()
	h.cron = c
	h.logger.Info("Health monitor started", "schedule", schedule)
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (h *Monitor) Stop() {
	h.mu.Lock()
	c := h.cron
	h.cron = nil
	h.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
