// Package protocol defines the JSON-RPC 2.0 envelope used to talk to MCP
// servers, the fixed method catalog, and the reserved error-code tables.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Version is the JSON-RPC protocol version carried by every envelope.
const Version = "2.0"

// Request is one JSON-RPC request envelope.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// NewRequest creates a request envelope for the given method and params.
func NewRequest(id int64, method string, params any) Request {
	return Request{
		JSONRPC: Version,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// ErrorObject is the error member of a JSON-RPC response.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Response is one parsed JSON-RPC reply.
// ParseResponse should be used to create instances of Response.
// A Response is read-only after parsing and is consumed by a single caller.
type Response struct {
	payload map[string]any
	result  json.RawMessage
	errObj  *ErrorObject
	rawID   *int64
	id      *int64
}

// responseEnvelope mirrors the wire shape of a reply for decoding.
type responseEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *ErrorObject    `json:"error"`
}

// ParseResponse decodes a JSON object body into a Response.
// It fails when the body is not a JSON object; shape validation beyond that
// (e.g. a reply carrying neither result nor error) is left to the caller.
func ParseResponse(body []byte) (*Response, error) {
	var env responseEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("response body is not a JSON object: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("response body is not a JSON object: %w", err)
	}

	return &Response{
		payload: payload,
		result:  env.Result,
		errObj:  env.Error,
		rawID:   env.ID,
	}, nil
}

// Payload returns the full decoded response body.
func (r *Response) Payload() map[string]any {
	return r.payload
}

// HasResult reports whether the reply carried a result member (even a null one).
func (r *Response) HasResult() bool {
	return r.result != nil
}

// Result returns the raw bytes of the result member, or nil when absent.
func (r *Response) Result() json.RawMessage {
	return r.result
}

// DecodeResult unmarshals the result member into v.
func (r *Response) DecodeResult(v any) error {
	if r.result == nil {
		return fmt.Errorf("response has no result")
	}
	return json.Unmarshal(r.result, v)
}

// IsError reports whether the reply carried an error object.
func (r *Response) IsError() bool {
	return r.errObj != nil
}

// Err returns the error object of the reply, or nil on success.
func (r *Response) Err() *ErrorObject {
	return r.errObj
}

// SetCorrelationID attaches an explicit correlation id to the response.
// An explicit id takes precedence over any id embedded in the payload.
func (r *Response) SetCorrelationID(id int64) {
	r.id = &id
}

// CorrelationID returns the response correlation id.
// An explicitly attached id wins over the id decoded from the payload.
func (r *Response) CorrelationID() (int64, bool) {
	if r.id != nil {
		return *r.id, true
	}
	if r.rawID != nil {
		return *r.rawID, true
	}
	return 0, false
}
