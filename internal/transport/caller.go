// Package transport executes single JSON-RPC calls against MCP servers over
// HTTP POST. One call, one request envelope, one parsed reply; timeouts are
// hard per-call deadlines drawn from the server configuration.
package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"

	"github.com/agentry/mcplink/internal/config"
	"github.com/agentry/mcplink/internal/errors"
	"github.com/agentry/mcplink/internal/protocol"
)

// maxResponseBytes bounds how much of a reply body is read.
const maxResponseBytes = 16 << 20

// Caller issues JSON-RPC calls over HTTP.
// NewCaller should be used to create instances of Caller.
// It is safe for concurrent use by multiple goroutines.
type Caller struct {
	httpClient *http.Client
	logger     hclog.Logger

	// nextID generates monotonic per-process correlation ids.
	nextID atomic.Int64
}

// NewCaller creates a transport caller.
func NewCaller(logger hclog.Logger, opts ...Option) (*Caller, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Caller{
		httpClient: options.httpClient,
		logger:     logger.Named("transport"),
	}, nil
}

// Call executes one JSON-RPC call against the given server.
// It fails with a connection error on network or timeout failure (and on a
// body that is not JSON), and with a protocol error when the decoded reply
// carries neither a result nor an error member.
func (c *Caller) Call(ctx context.Context, server config.ServerEntry, method string, params any) (*protocol.Response, error) {
	id := c.nextID.Add(1)
	envelope := protocol.NewRequest(id, method, params)

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.NewProtocol(fmt.Sprintf("failed to encode request for method '%s': %s", method, err))
	}

	callCtx, cancel := context.WithTimeout(ctx, server.CallTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, server.URL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewConnection(fmt.Sprintf("failed to build request for server '%s'", server.ID), err)
	}
	req.Header = Headers(server)

	c.logger.Debug("Calling server", "server", server.ID, "method", method, "id", id)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Call failed", "server", server.ID, "method", method, "error", err)
		return nil, errors.FromTransport(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.NewConnection(
			fmt.Sprintf("server '%s' returned HTTP status %d", server.ID, resp.StatusCode), nil)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.FromTransport(err)
	}

	parsed, err := protocol.ParseResponse(raw)
	if err != nil {
		return nil, errors.NewConnection("malformed response body", err)
	}

	if !parsed.HasResult() && !parsed.IsError() {
		return nil, errors.NewProtocol(
			fmt.Sprintf("response from server '%s' carries neither result nor error", server.ID))
	}

	return parsed, nil
}

// Headers computes the full header set for a call against the given server:
// the union of the server's extra headers, the authorization header derived
// from its auth type, and the fixed JSON content headers. The derived and
// fixed headers override same-named user-supplied keys.
func Headers(server config.ServerEntry) http.Header {
	h := make(http.Header, len(server.Headers)+3)

	for k, v := range server.Headers {
		h.Set(k, v)
	}

	if server.AuthToken != "" {
		switch strings.ToLower(server.AuthType) {
		case config.AuthTypeBearer:
			h.Set("Authorization", "Bearer "+server.AuthToken)
		case config.AuthTypeAPIKey:
			h.Set("X-API-Key", server.AuthToken)
		case config.AuthTypeBasic:
			h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(server.AuthToken)))
		default:
			h.Set("Authorization", server.AuthToken)
		}
	}

	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")

	return h
}
