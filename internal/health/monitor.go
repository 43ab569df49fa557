// Package health derives per-server availability from recent call outcomes.
// The monitor never performs network calls of its own; it is updated as a
// side effect of every transport call and read on demand.
package health

import (
	"sync"
	"time"

	"github.com/agentry/mcplink/internal/domain"
)

// DefaultFailureThreshold is the number of consecutive failures after which
// a server is reported unhealthy.
const DefaultFailureThreshold = 3

// serverRecord carries one server's health state behind its own lock, so
// contention stays scoped to a single server.
type serverRecord struct {
	mu     sync.Mutex
	record domain.HealthRecord
}

// Monitor tracks rolling health per server.
// NewMonitor should be used to create instances of Monitor.
// It is safe for concurrent use by multiple goroutines.
type Monitor struct {
	mu      sync.RWMutex
	records map[string]*serverRecord

	threshold int
	now       func() time.Time
}

// NewMonitor creates a health monitor. Records are created lazily on the
// first observed call for a server and never deleted afterwards.
func NewMonitor(opts ...Option) (*Monitor, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Monitor{
		records:   make(map[string]*serverRecord),
		threshold: options.threshold,
		now:       options.now,
	}, nil
}

// RecordOutcome records the result of one transport call.
// Each failure increments the consecutive-failure counter and resets the
// success counter; reaching the threshold flips the server to unhealthy.
// A single success immediately returns the server to healthy and zeroes
// both counters, regardless of its previous state.
func (m *Monitor) RecordOutcome(serverID string, success bool, latency time.Duration) {
	rec := m.recordFor(serverID)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	now := m.now().UTC()
	lat := latency
	rec.record.Latency = &lat
	rec.record.LastChecked = &now

	if success {
		rec.record.ConsecutiveFailures = 0
		rec.record.ConsecutiveSuccesses++
		rec.record.Status = domain.HealthHealthy
		rec.record.LastSuccessful = &now
		return
	}

	rec.record.ConsecutiveSuccesses = 0
	rec.record.ConsecutiveFailures++
	if rec.record.ConsecutiveFailures >= m.threshold {
		rec.record.Status = domain.HealthUnhealthy
	} else {
		rec.record.Status = domain.HealthDegraded
	}
}

// StatusOf returns the derived status for a server.
// A server with no observed calls reports healthy.
func (m *Monitor) StatusOf(serverID string) domain.HealthStatus {
	return m.RecordOf(serverID).Status
}

// RecordOf returns a copy of the health record for a server.
// A server with no observed calls reports a zeroed healthy record.
func (m *Monitor) RecordOf(serverID string) domain.HealthRecord {
	m.mu.RLock()
	rec, ok := m.records[serverID]
	m.mu.RUnlock()

	if !ok {
		return domain.HealthRecord{ServerID: serverID, Status: domain.HealthHealthy}
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.record
}

// StatusOfAll returns the derived status of every tracked server.
func (m *Monitor) StatusOfAll() map[string]domain.HealthStatus {
	m.mu.RLock()
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	statuses := make(map[string]domain.HealthStatus, len(ids))
	for _, id := range ids {
		statuses[id] = m.StatusOf(id)
	}
	return statuses
}

// recordFor returns the record for a server, creating it on first use.
func (m *Monitor) recordFor(serverID string) *serverRecord {
	m.mu.RLock()
	rec, ok := m.records[serverID]
	m.mu.RUnlock()
	if ok {
		return rec
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok = m.records[serverID]; ok {
		return rec
	}
	rec = &serverRecord{
		record: domain.HealthRecord{ServerID: serverID, Status: domain.HealthHealthy},
	}
	m.records[serverID] = rec
	return rec
}
