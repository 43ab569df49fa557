package health

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentry/mcplink/internal/domain"
)

func newTestMonitor(t *testing.T, opts ...Option) *Monitor {
	t.Helper()

	m, err := NewMonitor(opts...)
	require.NoError(t, err)
	return m
}

func TestMonitor_StartsHealthy(t *testing.T) {
	t.Parallel()

	m := newTestMonitor(t)

	require.Equal(t, domain.HealthHealthy, m.StatusOf("never-seen"))

	record := m.RecordOf("never-seen")
	require.Equal(t, "never-seen", record.ServerID)
	require.Zero(t, record.ConsecutiveFailures)
	require.Nil(t, record.LastChecked)
}

func TestMonitor_UnhealthyAtThreshold(t *testing.T) {
	t.Parallel()

	const threshold = 3
	m := newTestMonitor(t, WithFailureThreshold(threshold))

	// Below the threshold the server is degraded, advisory only.
	for i := 1; i < threshold; i++ {
		m.RecordOutcome("a", false, 10*time.Millisecond)
		require.Equal(t, domain.HealthDegraded, m.StatusOf("a"), "after %d failures", i)
	}

	m.RecordOutcome("a", false, 10*time.Millisecond)
	require.Equal(t, domain.HealthUnhealthy, m.StatusOf("a"))
	require.Equal(t, threshold, m.RecordOf("a").ConsecutiveFailures)
}

func TestMonitor_FastRecovery(t *testing.T) {
	t.Parallel()

	m := newTestMonitor(t, WithFailureThreshold(2))

	m.RecordOutcome("a", false, time.Millisecond)
	m.RecordOutcome("a", false, time.Millisecond)
	require.Equal(t, domain.HealthUnhealthy, m.StatusOf("a"))

	// A single success immediately returns the server to healthy.
	m.RecordOutcome("a", true, time.Millisecond)
	record := m.RecordOf("a")
	require.Equal(t, domain.HealthHealthy, record.Status)
	require.Zero(t, record.ConsecutiveFailures)
	require.Equal(t, 1, record.ConsecutiveSuccesses)
	require.NotNil(t, record.LastSuccessful)
}

func TestMonitor_FailureResetsSuccessStreak(t *testing.T) {
	t.Parallel()

	m := newTestMonitor(t)

	m.RecordOutcome("a", true, time.Millisecond)
	m.RecordOutcome("a", true, time.Millisecond)
	require.Equal(t, 2, m.RecordOf("a").ConsecutiveSuccesses)

	m.RecordOutcome("a", false, time.Millisecond)
	record := m.RecordOf("a")
	require.Zero(t, record.ConsecutiveSuccesses)
	require.Equal(t, 1, record.ConsecutiveFailures)
	require.Equal(t, domain.HealthDegraded, record.Status)
}

func TestMonitor_TracksLatencyAndTimestamps(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	m := newTestMonitor(t, WithClock(func() time.Time { return now }))

	m.RecordOutcome("a", true, 250*time.Millisecond)

	record := m.RecordOf("a")
	require.NotNil(t, record.Latency)
	require.Equal(t, 250*time.Millisecond, *record.Latency)
	require.Equal(t, now, *record.LastChecked)
	require.Equal(t, now, *record.LastSuccessful)
}

func TestMonitor_FailureKeepsLastSuccessful(t *testing.T) {
	t.Parallel()

	m := newTestMonitor(t)

	m.RecordOutcome("a", true, time.Millisecond)
	wasSuccessful := m.RecordOf("a").LastSuccessful
	require.NotNil(t, wasSuccessful)

	m.RecordOutcome("a", false, time.Millisecond)
	require.Equal(t, wasSuccessful, m.RecordOf("a").LastSuccessful)
}

func TestMonitor_ServersAreIndependent(t *testing.T) {
	t.Parallel()

	m := newTestMonitor(t, WithFailureThreshold(1))

	m.RecordOutcome("a", false, time.Millisecond)
	m.RecordOutcome("b", true, time.Millisecond)

	require.Equal(t, domain.HealthUnhealthy, m.StatusOf("a"))
	require.Equal(t, domain.HealthHealthy, m.StatusOf("b"))
}

func TestMonitor_ConcurrentOutcomes(t *testing.T) {
	t.Parallel()

	m := newTestMonitor(t)

	var wg sync.WaitGroup
	servers := []string{"a", "b", "c", "d"}
	for _, id := range servers {
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 50 {
					m.RecordOutcome(id, true, time.Millisecond)
					_ = m.StatusOf(id)
				}
			}()
		}
	}
	wg.Wait()

	for _, id := range servers {
		require.Equal(t, domain.HealthHealthy, m.StatusOf(id))
		require.Equal(t, 400, m.RecordOf(id).ConsecutiveSuccesses)
	}
}

func TestMonitor_StatusOfAll(t *testing.T) {
	t.Parallel()

	m := newTestMonitor(t, WithFailureThreshold(1))

	require.Empty(t, m.StatusOfAll())

	m.RecordOutcome("a", true, time.Millisecond)
	m.RecordOutcome("b", false, time.Millisecond)

	require.Equal(t, map[string]domain.HealthStatus{
		"a": domain.HealthHealthy,
		"b": domain.HealthUnhealthy,
	}, m.StatusOfAll())
}

func TestNewOptions_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewOptions(WithFailureThreshold(0))
	require.Error(t, err)

	_, err = NewOptions(WithClock(nil))
	require.Error(t, err)
}
