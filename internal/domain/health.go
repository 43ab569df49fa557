package domain

import "time"

const (
	// HealthHealthy is the starting state and the state after any success.
	HealthHealthy HealthStatus = "healthy"

	// HealthDegraded is reported after at least one consecutive failure
	// while still under the unhealthy threshold. Advisory only.
	HealthDegraded HealthStatus = "degraded"

	// HealthUnhealthy is reported once consecutive failures reach the
	// configured threshold.
	HealthUnhealthy HealthStatus = "unhealthy"
)

// HealthStatus is the derived availability state of an MCP server.
type HealthStatus string

// HealthRecord is the rolling per-server health state derived from recent
// call outcomes. Records are created on first observed call and never
// deleted during the process lifetime.
type HealthRecord struct {
	ServerID             string         `json:"server"`
	Status               HealthStatus   `json:"status"`
	ConsecutiveFailures  int            `json:"consecutiveFailures"`
	ConsecutiveSuccesses int            `json:"consecutiveSuccesses"`
	Latency              *time.Duration `json:"latency,omitempty"`
	LastChecked          *time.Time     `json:"lastChecked,omitempty"`
	LastSuccessful       *time.Time     `json:"lastSuccessful,omitempty"`
}
