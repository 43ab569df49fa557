// Package registry holds the immutable set of configured MCP servers.
package registry

import (
	"fmt"

	"github.com/agentry/mcplink/internal/config"
	"github.com/agentry/mcplink/internal/errors"
)

// Registry answers existence, lookup and listing queries over the servers
// registered at construction. It is immutable after construction and
// therefore safe for concurrent use without locking. Adding or removing
// servers is a restart-time operation.
// New should be used to create instances of Registry.
type Registry struct {
	byID  map[string]config.ServerEntry
	order []string
}

// New builds a registry from the given entries.
// It fails on duplicate server ids. Disabled servers are retained so they
// stay visible to introspection and health reporting.
func New(entries []config.ServerEntry) (*Registry, error) {
	byID := make(map[string]config.ServerEntry, len(entries))
	order := make([]string, 0, len(entries))

	for _, entry := range entries {
		if _, exists := byID[entry.ID]; exists {
			return nil, fmt.Errorf("duplicate server id '%s'", entry.ID)
		}
		byID[entry.ID] = entry
		order = append(order, entry.ID)
	}

	return &Registry{byID: byID, order: order}, nil
}

// Has reports whether the server is registered AND enabled.
func (r *Registry) Has(id string) bool {
	entry, ok := r.byID[id]
	return ok && entry.Enabled
}

// Get returns the configuration for the given server id, including servers
// that are disabled. It fails with a not-found error for unknown ids.
func (r *Registry) Get(id string) (config.ServerEntry, error) {
	entry, ok := r.byID[id]
	if !ok {
		return config.ServerEntry{}, errors.NewNotFound("server '%s' is not registered", id)
	}
	return entry, nil
}

// Resolve returns the configuration for a server that is both registered
// and enabled; anything else fails with a not-found error.
func (r *Registry) Resolve(id string) (config.ServerEntry, error) {
	entry, ok := r.byID[id]
	if !ok {
		return config.ServerEntry{}, errors.NewNotFound("server '%s' is not registered", id)
	}
	if !entry.Enabled {
		return config.ServerEntry{}, errors.NewNotFound("server '%s' is disabled", id)
	}
	return entry, nil
}

// List returns all registered servers in registration order.
func (r *Registry) List() []config.ServerEntry {
	entries := make([]config.ServerEntry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, r.byID[id])
	}
	return entries
}

// EnabledIDs returns the ids of all enabled servers in registration order.
func (r *Registry) EnabledIDs() []string {
	ids := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if r.byID[id].Enabled {
			ids = append(ids, id)
		}
	}
	return ids
}
