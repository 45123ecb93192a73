package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/interfaces/mocks"
	"github.com/haguru/bugtracker/internal/metrics"
	pkgmetrics "github.com/haguru/bugtracker/pkg/metrics"
	"github.com/haguru/bugtracker/pkg/zerolog"
)

func TestMonitor_Check(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("Ping", mock.Anything).Return(nil).Once()
	db.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()

	m := pkgmetrics.NewMetrics("test")
	metrics.RegisterServiceMetrics(m)
	monitor := NewMonitor(db, m, zerolog.NewNopLogger(), 0)

	require.NoError(t, monitor.Check(context.Background()))
	assert.Equal(t, 1.0, databaseUp(t, m))

	assert.ErrorContains(t, monitor.Check(context.Background()), "connection refused")
	assert.Equal(t, 0.0, databaseUp(t, m))
}

func TestMonitor_CheckHonoursTimeout(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("Ping", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= 50*time.Millisecond
	})).Return(nil).Once()

	monitor := NewMonitor(db, nil, zerolog.NewNopLogger(), 50*time.Millisecond)
	assert.NoError(t, monitor.Check(context.Background()))
}

type countingPinger struct {
	calls atomic.Int32
}

func (p *countingPinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	return nil
}

func TestMonitor_StartStop(t *testing.T) {
	pinger := &countingPinger{}
	monitor := NewMonitor(pinger, nil, zerolog.NewNopLogger(), time.Second)

	assert.Error(t, monitor.Start("not a schedule"))

	require.NoError(t, monitor.Start("@every 1s"))
	assert.Error(t, monitor.Start("@every 1s"), "second start must fail")

	assert.Eventually(t, func() bool { return pinger.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	monitor.Stop()

	monitor.Stop()
}

func databaseUp(t *testing.T, m interfaces.Metrics) float64 {
	t.Helper()
	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == "test_database_up" {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatal("database_up gauge not registered")
	return 0
}
