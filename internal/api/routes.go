// Package api exposes the dispatcher over HTTP for local consumers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/agentry/mcplink/internal/dispatch"
	"github.com/agentry/mcplink/internal/domain"
	"github.com/agentry/mcplink/internal/errors"
)

// APIVersion is the version used in the OpenAPI spec and URL paths.
const APIVersion = "v1"

// ServersResponse is the wrapped API response for the list of server ids.
type ServersResponse struct {
	Body []string
}

// ServerToolsRequest asks for the tools advertised by one server.
type ServerToolsRequest struct {
	Server string `doc:"Id of the server to list tools for" example:"time" path:"server"`
}

// ToolsResponse carries the tools of one server.
type ToolsResponse struct {
	Body []domain.Tool
}

// AllToolsResponse carries the aggregated per-server tool listings.
type AllToolsResponse struct {
	Body []AggregatedTools
}

// AggregatedTools is one server's slot in the aggregated listing; a failed
// server carries its error text instead of entries.
type AggregatedTools struct {
	Server string        `json:"server"`
	Tools  []domain.Tool `json:"tools,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// ToolCallRequest invokes a tool on one server.
type ToolCallRequest struct {
	Server string         `doc:"Id of the server"         example:"time"             path:"server"`
	Tool   string         `doc:"Name of the tool to call" example:"get_current_time" path:"tool"`
	Body   map[string]any `doc:"Arguments for the tool"`
}

// ToolCallResponse carries the unwrapped tool call result.
type ToolCallResponse struct {
	Body any
}

// HealthResponse carries the health records of all registered servers.
type HealthResponse struct {
	Body struct {
		Servers []domain.HealthRecord `doc:"Tracked server health records" json:"servers"`
	}
}

// ServerHealthRequest asks for the health record of one server.
type ServerHealthRequest struct {
	Server string `doc:"Id of the server to check" example:"time" path:"server"`
}

// ServerHealthResponse carries one server's health record.
type ServerHealthResponse struct {
	Body domain.HealthRecord
}

// PingResponse carries the per-server reachability map.
type PingResponse struct {
	Body map[string]bool
}

// RegisterRoutes registers all API routes on the provided Huma router.
// Returns the API path prefix (e.g. "/api/v1") under which routes live.
func RegisterRoutes(router huma.API, dispatcher *dispatch.Dispatcher) (string, error) {
	if router == nil {
		return "", fmt.Errorf("router cannot be nil")
	}
	if dispatcher == nil {
		return "", fmt.Errorf("dispatcher cannot be nil")
	}

	apiPathPrefix, err := url.JoinPath("/api", APIVersion)
	if err != nil {
		return "", fmt.Errorf("failed to construct API path prefix: %w", err)
	}

	v1 := huma.NewGroup(router, apiPathPrefix)
	registerHealthRoutes(v1, dispatcher, "/health")
	registerServerRoutes(v1, dispatcher, "/servers")
	registerCacheRoutes(v1, dispatcher, "/caches")

	return apiPathPrefix, nil
}

func registerHealthRoutes(routerAPI huma.API, dispatcher *dispatch.Dispatcher, apiPathPrefix string) {
	healthAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Health"}

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "listServersHealth",
			Method:      http.MethodGet,
			Summary:     "List the health records for all servers",
			Tags:        tags,
		},
		func(_ context.Context, _ *struct{}) (*HealthResponse, error) {
			records := dispatcher.Health()
			slices.SortFunc(records, func(a, b domain.HealthRecord) int {
				return strings.Compare(a.ServerID, b.ServerID)
			})

			resp := &HealthResponse{}
			resp.Body.Servers = records
			return resp, nil
		},
	)

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "getServerHealth",
			Method:      http.MethodGet,
			Path:        "/{server}",
			Summary:     "Get the health record of a server",
			Tags:        tags,
		},
		func(_ context.Context, input *ServerHealthRequest) (*ServerHealthResponse, error) {
			record, err := dispatcher.ServerHealth(input.Server)
			if err != nil {
				return nil, mapError(err)
			}
			return &ServerHealthResponse{Body: record}, nil
		},
	)
}

func registerServerRoutes(routerAPI huma.API, dispatcher *dispatch.Dispatcher, apiPathPrefix string) {
	serversAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Servers"}

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listServers",
			Method:      http.MethodGet,
			Summary:     "List all registered server ids",
			Tags:        tags,
		},
		func(_ context.Context, _ *struct{}) (*ServersResponse, error) {
			servers := dispatcher.Servers()
			ids := make([]string, 0, len(servers))
			for _, s := range servers {
				ids = append(ids, s.ID)
			}
			slices.Sort(ids)
			return &ServersResponse{Body: ids}, nil
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listAllTools",
			Method:      http.MethodGet,
			Path:        "/tools",
			Summary:     "List tools across all enabled servers",
			Tags:        append(tags, "Tools"),
		},
		func(ctx context.Context, _ *struct{}) (*AllToolsResponse, error) {
			listings := dispatcher.AllTools(ctx)

			aggregated := make([]AggregatedTools, 0, len(listings))
			for _, l := range listings {
				slot := AggregatedTools{Server: l.Server, Tools: l.Tools}
				if l.Err != nil {
					slot.Error = l.Err.Error()
				}
				aggregated = append(aggregated, slot)
			}
			return &AllToolsResponse{Body: aggregated}, nil
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listServerTools",
			Method:      http.MethodGet,
			Path:        "/{server}/tools",
			Summary:     "List the tools of a server",
			Tags:        append(tags, "Tools"),
		},
		func(ctx context.Context, input *ServerToolsRequest) (*ToolsResponse, error) {
			tools, err := dispatcher.ServerTools(ctx, input.Server)
			if err != nil {
				return nil, mapError(err)
			}
			return &ToolsResponse{Body: tools}, nil
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "callTool",
			Method:      http.MethodPost,
			Path:        "/{server}/tools/{tool}",
			Summary:     "Call a tool on a server",
			Tags:        append(tags, "Tools"),
		},
		func(ctx context.Context, input *ToolCallRequest) (*ToolCallResponse, error) {
			result, err := dispatcher.CallTool(ctx, input.Server, input.Tool, input.Body)
			if err != nil {
				return nil, mapError(err)
			}
			return &ToolCallResponse{Body: result}, nil
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "pingServers",
			Method:      http.MethodPost,
			Path:        "/ping",
			Summary:     "Test connectivity to all enabled servers",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*PingResponse, error) {
			return &PingResponse{Body: dispatcher.TestConnections(ctx)}, nil
		},
	)
}

func registerCacheRoutes(routerAPI huma.API, dispatcher *dispatch.Dispatcher, apiPathPrefix string) {
	cachesAPI := huma.NewGroup(routerAPI, apiPathPrefix)

	huma.Register(
		cachesAPI,
		huma.Operation{
			OperationID: "clearCaches",
			Method:      http.MethodDelete,
			Summary:     "Invalidate all cached capability listings",
			Tags:        []string{"Caches"},
		},
		func(_ context.Context, _ *struct{}) (*struct{}, error) {
			dispatcher.ClearCaches()
			return &struct{}{}, nil
		},
	)
}

// mapError converts the client error taxonomy to HTTP statuses:
// not-found → 404, execution → 502, connection timeouts → 504, other
// connection failures and protocol violations → 502.
func mapError(err error) error {
	switch {
	case errors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case errors.IsExecution(err):
		return huma.Error502BadGateway(err.Error())
	case errors.IsConnection(err):
		if strings.Contains(err.Error(), "timed out") {
			return huma.Error504GatewayTimeout(err.Error())
		}
		return huma.Error502BadGateway(err.Error())
	case errors.IsProtocol(err):
		return huma.Error502BadGateway(err.Error())
	default:
		return huma.Error500InternalServerError(err.Error())
	}
}
