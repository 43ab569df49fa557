// Package contracts defines the collaborator interfaces injected into the
// dispatcher at construction, so each can be substituted with a fake in tests.
package contracts

import (
	"context"
	"time"

	"github.com/agentry/mcplink/internal/config"
	"github.com/agentry/mcplink/internal/domain"
	"github.com/agentry/mcplink/internal/protocol"
)

// Caller executes one JSON-RPC call against one server.
type Caller interface {
	// Call builds the request envelope and headers for the given server,
	// applies its configured timeout, and returns the parsed reply.
	Call(ctx context.Context, server config.ServerEntry, method string, params any) (*protocol.Response, error)
}

// CapabilityCache caches capability listings per (server, kind).
type CapabilityCache interface {
	// Get returns the cached snapshot for the key, if present and fresh.
	Get(serverID string, kind domain.CapabilityKind) (any, bool)

	// Put stores a listing snapshot for the key.
	Put(serverID string, kind domain.CapabilityKind, value any)

	// Invalidate removes every kind cached for one server.
	Invalidate(serverID string)

	// InvalidateAll clears the whole cache.
	InvalidateAll()
}

// HealthMonitor tracks per-server health derived from call outcomes.
// It never performs network calls of its own.
type HealthMonitor interface {
	// RecordOutcome records the result of one transport call.
	RecordOutcome(serverID string, success bool, latency time.Duration)

	// StatusOf returns the derived status for a server.
	// Servers without any observed call report healthy.
	StatusOf(serverID string) domain.HealthStatus

	// RecordOf returns the full health record for a server.
	RecordOf(serverID string) domain.HealthRecord
}
