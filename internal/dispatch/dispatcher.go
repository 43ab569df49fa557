// Package dispatch implements the public face of the multi-server MCP
// client. The dispatcher composes the server registry, transport caller,
// capability cache and health monitor to execute single-server actions and
// aggregate multi-server listings.
package dispatch

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/agentry/mcplink/internal/config"
	"github.com/agentry/mcplink/internal/contracts"
	"github.com/agentry/mcplink/internal/domain"
	"github.com/agentry/mcplink/internal/errors"
	"github.com/agentry/mcplink/internal/protocol"
	"github.com/agentry/mcplink/internal/registry"
)

// Dispatcher executes capability discovery and invocation across the
// configured MCP servers.
// NewDispatcher should be used to create instances of Dispatcher.
// It is safe for concurrent use by multiple goroutines.
type Dispatcher struct {
	logger   hclog.Logger
	registry *registry.Registry
	caller   contracts.Caller
	cache    contracts.CapabilityCache
	health   contracts.HealthMonitor

	actions        map[string]actionSpec
	maxConcurrency int
	validateArgs   bool
}

// Dependencies contains the collaborators required by the dispatcher.
type Dependencies struct {
	Logger   hclog.Logger
	Registry *registry.Registry
	Caller   contracts.Caller
	Cache    contracts.CapabilityCache
	Health   contracts.HealthMonitor
}

// Validate ensures all required dependencies are present.
func (d Dependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	if d.Registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	if d.Caller == nil {
		return fmt.Errorf("caller cannot be nil")
	}
	if d.Cache == nil {
		return fmt.Errorf("cache cannot be nil")
	}
	if d.Health == nil {
		return fmt.Errorf("health monitor cannot be nil")
	}
	return nil
}

// NewDispatcher creates a dispatcher from the given dependencies and options.
// The action table is validated against the protocol method catalog here, so
// a mapping to an unknown method fails construction rather than a call.
func NewDispatcher(deps Dependencies, opt ...Option) (*Dispatcher, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for dispatcher: %w", err)
	}

	options, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid dispatcher options: %w", err)
	}

	actions := actionTable()
	for action, spec := range actions {
		if !protocol.IsKnownMethod(spec.method) {
			return nil, fmt.Errorf("action '%s' maps to unknown method '%s'", action, spec.method)
		}
		if protocol.IsNotification(spec.method) {
			return nil, fmt.Errorf("action '%s' maps to notification method '%s'", action, spec.method)
		}
	}

	return &Dispatcher{
		logger:         deps.Logger.Named("dispatch"),
		registry:       deps.Registry,
		caller:         deps.Caller,
		cache:          deps.Cache,
		health:         deps.Health,
		actions:        actions,
		maxConcurrency: options.maxConcurrency,
		validateArgs:   options.validateArgs,
	}, nil
}

// HasServer reports whether the server is registered and enabled.
// No network call is made.
func (d *Dispatcher) HasServer(id string) bool {
	return d.registry.Has(id)
}

// Servers returns the configuration of every registered server,
// including disabled ones.
func (d *Dispatcher) Servers() []config.ServerEntry {
	return d.registry.List()
}

// Execute resolves the server, maps the action to its protocol method,
// performs the call and returns the unwrapped result on success.
// Unknown or disabled server ids fail with a not-found error before any
// transport call is made.
func (d *Dispatcher) Execute(ctx context.Context, serverID, action string, params map[string]any) (any, error) {
	server, err := d.registry.Resolve(serverID)
	if err != nil {
		return nil, err
	}

	spec, ok := d.actions[action]
	if !ok {
		return nil, errors.NewNotFound("action '%s' is not supported", action)
	}

	shaped, err := spec.shape(params)
	if err != nil {
		return nil, err
	}

	resp, err := d.call(ctx, server, spec.method, shaped)
	if err != nil {
		return nil, err
	}

	var result any
	if err := resp.DecodeResult(&result); err != nil {
		return nil, errors.NewProtocol(
			fmt.Sprintf("result from server '%s' for method '%s' is not valid JSON: %s", serverID, spec.method, err))
	}
	return result, nil
}

// TestConnection pings the server and reports whether it answered.
// The capability cache is not touched.
func (d *Dispatcher) TestConnection(ctx context.Context, serverID string) (bool, error) {
	server, err := d.registry.Resolve(serverID)
	if err != nil {
		return false, err
	}

	_, err = d.call(ctx, server, protocol.MethodPing, nil)
	return err == nil, nil
}

// TestConnections pings every enabled server with bounded parallelism and
// returns a per-server reachability map. One server failing never aborts
// the rest.
func (d *Dispatcher) TestConnections(ctx context.Context) map[string]bool {
	type outcome struct {
		id string
		ok bool
	}

	ids := d.registry.EnabledIDs()
	outcomes := fanOut(d, ids, func(id string) outcome {
		ok, err := d.TestConnection(ctx, id)
		return outcome{id: id, ok: ok && err == nil}
	})

	results := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		results[o.id] = o.ok
	}
	return results
}

// Health returns the health record of every registered server, disabled
// ones included. Pure read; no network calls.
func (d *Dispatcher) Health() []domain.HealthRecord {
	servers := d.registry.List()
	records := make([]domain.HealthRecord, 0, len(servers))
	for _, server := range servers {
		records = append(records, d.health.RecordOf(server.ID))
	}
	return records
}

// ServerHealth returns the health record for one registered server.
// Pure read; no network calls.
func (d *Dispatcher) ServerHealth(serverID string) (domain.HealthRecord, error) {
	if _, err := d.registry.Get(serverID); err != nil {
		return domain.HealthRecord{}, err
	}
	return d.health.RecordOf(serverID), nil
}

// ClearCaches invalidates every cached capability listing for every server.
func (d *Dispatcher) ClearCaches() {
	d.cache.InvalidateAll()
}

// ClearServerCache invalidates every cached capability listing for one server.
func (d *Dispatcher) ClearServerCache(serverID string) {
	d.cache.Invalidate(serverID)
}

// call runs one transport call, records its outcome in the health monitor,
// and translates a server-returned JSON-RPC error into an execution error.
// A server that answers with a well-formed error is still reachable, so only
// transport-level failures count against its health.
func (d *Dispatcher) call(ctx context.Context, server config.ServerEntry, method string, params any) (*protocol.Response, error) {
	start := time.Now()
	resp, err := d.caller.Call(ctx, server, method, params)
	latency := time.Since(start)

	d.health.RecordOutcome(server.ID, err == nil, latency)

	if err != nil {
		return nil, err
	}
	if execErr := errors.FromResponse(resp); execErr != nil {
		return nil, execErr
	}
	return resp, nil
}
