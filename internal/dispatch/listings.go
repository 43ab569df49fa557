package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/errgroup"

	"github.com/agentry/mcplink/internal/domain"
	"github.com/agentry/mcplink/internal/errors"
	"github.com/agentry/mcplink/internal/protocol"
)

// ToolListing is one server's slot in an aggregated tools listing.
type ToolListing struct {
	Server string        `json:"server"`
	Tools  []domain.Tool `json:"tools,omitempty"`
	Err    error         `json:"-"`
}

// ResourceListing is one server's slot in an aggregated resources listing.
type ResourceListing struct {
	Server    string            `json:"server"`
	Resources []domain.Resource `json:"resources,omitempty"`
	Err       error             `json:"-"`
}

// PromptListing is one server's slot in an aggregated prompts listing.
type PromptListing struct {
	Server  string          `json:"server"`
	Prompts []domain.Prompt `json:"prompts,omitempty"`
	Err     error           `json:"-"`
}

// ServerTools returns the tools advertised by one server, from the cache
// when fresh, otherwise via a tools/list call whose parsed result replaces
// the cached snapshot.
func (d *Dispatcher) ServerTools(ctx context.Context, serverID string) ([]domain.Tool, error) {
	return fetchListing(ctx, d, serverID, domain.KindTools, protocol.MethodToolsList, decodeTools)
}

// ServerResources returns the resources advertised by one server.
func (d *Dispatcher) ServerResources(ctx context.Context, serverID string) ([]domain.Resource, error) {
	return fetchListing(ctx, d, serverID, domain.KindResources, protocol.MethodResourcesList, decodeResources)
}

// ServerPrompts returns the prompts advertised by one server.
func (d *Dispatcher) ServerPrompts(ctx context.Context, serverID string) ([]domain.Prompt, error) {
	return fetchListing(ctx, d, serverID, domain.KindPrompts, protocol.MethodPromptsList, decodePrompts)
}

// ServerSamples returns the samples advertised by one server.
func (d *Dispatcher) ServerSamples(ctx context.Context, serverID string) ([]domain.Sample, error) {
	return fetchListing(ctx, d, serverID, domain.KindSamples, protocol.MethodSamplesList, decodeSamples)
}

// AllTools collects the tools of every enabled server with bounded
// parallelism. A failing server contributes its error to its own slot and
// never aborts collection for its peers.
func (d *Dispatcher) AllTools(ctx context.Context) []ToolListing {
	return fanOut(d, d.registry.EnabledIDs(), func(id string) ToolListing {
		tools, err := d.ServerTools(ctx, id)
		return ToolListing{Server: id, Tools: tools, Err: err}
	})
}

// AllResources collects the resources of every enabled server, fail-soft.
func (d *Dispatcher) AllResources(ctx context.Context) []ResourceListing {
	return fanOut(d, d.registry.EnabledIDs(), func(id string) ResourceListing {
		resources, err := d.ServerResources(ctx, id)
		return ResourceListing{Server: id, Resources: resources, Err: err}
	})
}

// AllPrompts collects the prompts of every enabled server, fail-soft.
func (d *Dispatcher) AllPrompts(ctx context.Context) []PromptListing {
	return fanOut(d, d.registry.EnabledIDs(), func(id string) PromptListing {
		prompts, err := d.ServerPrompts(ctx, id)
		return PromptListing{Server: id, Prompts: prompts, Err: err}
	})
}

// CallTool invokes a tool on a server. When argument validation is enabled,
// the arguments are checked against the tool's advertised input schema and a
// violation fails with the invalid-params execution error before any
// transport call.
func (d *Dispatcher) CallTool(ctx context.Context, serverID, name string, args map[string]any) (any, error) {
	if args == nil {
		args = map[string]any{}
	}

	if d.validateArgs {
		if err := d.validateToolArgs(ctx, serverID, name, args); err != nil {
			return nil, err
		}
	}

	return d.Execute(ctx, serverID, ActionCallTool, map[string]any{
		"name":      name,
		"arguments": args,
	})
}

// ReadResource reads a resource from a server by URI.
func (d *Dispatcher) ReadResource(ctx context.Context, serverID, uri string) (any, error) {
	return d.Execute(ctx, serverID, ActionReadResource, map[string]any{"uri": uri})
}

// GetPrompt renders a prompt from a server with the given arguments.
func (d *Dispatcher) GetPrompt(ctx context.Context, serverID, name string, args map[string]any) (any, error) {
	params := map[string]any{"name": name}
	if len(args) > 0 {
		params["arguments"] = args
	}
	return d.Execute(ctx, serverID, ActionGetPrompt, params)
}

// GetSample fetches a sample from a server by name.
func (d *Dispatcher) GetSample(ctx context.Context, serverID, name string) (any, error) {
	return d.Execute(ctx, serverID, ActionGetSample, map[string]any{"name": name})
}

// validateToolArgs checks args against the cached input schema of the tool.
// A tool absent from the listing fails with a not-found error. A schema that
// cannot itself be compiled never blocks the call.
func (d *Dispatcher) validateToolArgs(ctx context.Context, serverID, name string, args map[string]any) error {
	tools, err := d.ServerTools(ctx, serverID)
	if err != nil {
		return err
	}

	var tool *mcp.Tool
	for i := range tools {
		if tools[i].Tool.Name == name {
			tool = &tools[i].Tool
			break
		}
	}
	if tool == nil {
		return errors.NewNotFound("tool '%s' is not advertised by server '%s'", name, serverID)
	}

	schemaBytes, err := json.Marshal(tool.InputSchema)
	if err != nil {
		d.logger.Debug("Skipping argument validation, schema not marshallable",
			"server", serverID, "tool", name, "error", err)
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		d.logger.Debug("Skipping argument validation, schema not compilable",
			"server", serverID, "tool", name, "error", err)
		return nil
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return errors.NewExecution(
			protocol.CodeInvalidParams,
			protocol.MessageFor(protocol.CodeInvalidParams),
			details,
		)
	}
	return nil
}

// fetchListing serves a capability listing cache-first, refreshing the
// snapshot through the regular call path on a miss.
func fetchListing[T any](
	ctx context.Context,
	d *Dispatcher,
	serverID string,
	kind domain.CapabilityKind,
	method string,
	decode func(resp *protocol.Response, serverID string) ([]T, error),
) ([]T, error) {
	server, err := d.registry.Resolve(serverID)
	if err != nil {
		return nil, err
	}

	if v, ok := d.cache.Get(serverID, kind); ok {
		if snapshot, ok := v.([]T); ok {
			return snapshot, nil
		}
	}

	resp, err := d.call(ctx, server, method, nil)
	if err != nil {
		return nil, err
	}

	entries, err := decode(resp, serverID)
	if err != nil {
		return nil, err
	}

	d.cache.Put(serverID, kind, entries)
	return entries, nil
}

// fanOut runs fn for every id with bounded parallelism and returns one
// result per id, in id order. fn must capture its own failures in R.
func fanOut[R any](d *Dispatcher, ids []string, fn func(id string) R) []R {
	results := make([]R, len(ids))

	g := &errgroup.Group{}
	g.SetLimit(d.maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = fn(id)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func decodeTools(resp *protocol.Response, serverID string) ([]domain.Tool, error) {
	var payload struct {
		Tools []mcp.Tool `json:"tools"`
	}
	if err := resp.DecodeResult(&payload); err != nil {
		return nil, errors.NewProtocol(fmt.Sprintf("tools listing from server '%s' is malformed: %s", serverID, err))
	}

	tools := make([]domain.Tool, 0, len(payload.Tools))
	for _, t := range payload.Tools {
		tools = append(tools, domain.Tool{Server: serverID, Tool: t})
	}
	return tools, nil
}

func decodeResources(resp *protocol.Response, serverID string) ([]domain.Resource, error) {
	var payload struct {
		Resources []mcp.Resource `json:"resources"`
	}
	if err := resp.DecodeResult(&payload); err != nil {
		return nil, errors.NewProtocol(fmt.Sprintf("resources listing from server '%s' is malformed: %s", serverID, err))
	}

	resources := make([]domain.Resource, 0, len(payload.Resources))
	for _, r := range payload.Resources {
		resources = append(resources, domain.Resource{Server: serverID, Resource: r})
	}
	return resources, nil
}

func decodePrompts(resp *protocol.Response, serverID string) ([]domain.Prompt, error) {
	var payload struct {
		Prompts []mcp.Prompt `json:"prompts"`
	}
	if err := resp.DecodeResult(&payload); err != nil {
		return nil, errors.NewProtocol(fmt.Sprintf("prompts listing from server '%s' is malformed: %s", serverID, err))
	}

	prompts := make([]domain.Prompt, 0, len(payload.Prompts))
	for _, p := range payload.Prompts {
		prompts = append(prompts, domain.Prompt{Server: serverID, Prompt: p})
	}
	return prompts, nil
}

func decodeSamples(resp *protocol.Response, serverID string) ([]domain.Sample, error) {
	var payload struct {
		Samples []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			MIMEType    string `json:"mimeType"`
		} `json:"samples"`
	}
	if err := resp.DecodeResult(&payload); err != nil {
		return nil, errors.NewProtocol(fmt.Sprintf("samples listing from server '%s' is malformed: %s", serverID, err))
	}

	samples := make([]domain.Sample, 0, len(payload.Samples))
	for _, s := range payload.Samples {
		samples = append(samples, domain.Sample{
			Server:      serverID,
			Name:        s.Name,
			Description: s.Description,
			MIMEType:    s.MIMEType,
		})
	}
	return samples, nil
}
