package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentry/mcplink/internal/protocol"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "connection", err: NewConnection("boom", nil), check: IsConnection},
		{name: "protocol", err: NewProtocol("bad shape"), check: IsProtocol},
		{name: "execution", err: NewExecution(-32601, "Method not found", nil), check: IsExecution},
		{name: "not found", err: NewNotFound("server '%s' is not registered", "x"), check: IsNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.True(t, tc.check(tc.err))

			// The other three predicates must reject it.
			count := 0
			for _, pred := range []func(error) bool{IsConnection, IsProtocol, IsExecution, IsNotFound} {
				if pred(tc.err) {
					count++
				}
			}
			require.Equal(t, 1, count)
		})
	}
}

func TestErrorKinds_WrappedChains(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("calling server: %w", NewNotFound("server 'a' is disabled"))
	require.True(t, IsNotFound(wrapped))
	require.False(t, IsConnection(wrapped))
}

func TestFromTransport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cause       error
		wantMessage string
	}{
		{name: "deadline exceeded", cause: context.DeadlineExceeded, wantMessage: "request timed out"},
		{name: "generic failure", cause: stderrors.New("connection refused"), wantMessage: "request failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := FromTransport(tc.cause)
			require.Equal(t, KindConnection, err.Kind)
			require.Equal(t, tc.wantMessage, err.Message)
			require.ErrorIs(t, err, tc.cause)
		})
	}
}

func TestFromTransport_PassesThroughTaggedErrors(t *testing.T) {
	t.Parallel()

	orig := NewProtocol("already translated")
	require.Same(t, orig, FromTransport(orig))
}

func TestFromResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantNil     bool
		wantCode    int
		wantMessage string
	}{
		{
			name:    "success response",
			body:    `{"jsonrpc":"2.0","id":1,"result":{}}`,
			wantNil: true,
		},
		{
			name:        "server message surfaced verbatim",
			body:        `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"no such method: frobnicate"}}`,
			wantCode:    -32601,
			wantMessage: "no such method: frobnicate",
		},
		{
			name:        "empty message resolves to canonical",
			body:        `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":""}}`,
			wantCode:    -32601,
			wantMessage: "Method not found",
		},
		{
			name:        "out of range code falls back to unknown",
			body:        `{"jsonrpc":"2.0","id":1,"error":{"code":-32050,"message":""}}`,
			wantCode:    -32050,
			wantMessage: protocol.UnknownErrorMessage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp, err := protocol.ParseResponse([]byte(tc.body))
			require.NoError(t, err)

			execErr := FromResponse(resp)
			if tc.wantNil {
				require.Nil(t, execErr)
				return
			}

			require.NotNil(t, execErr)
			require.Equal(t, KindExecution, execErr.Kind)
			require.Equal(t, tc.wantCode, execErr.Code)
			require.Equal(t, tc.wantMessage, execErr.Message)
		})
	}
}

func TestFromResponse_PreservesData(t *testing.T) {
	t.Parallel()

	body := `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid params","data":{"field":"name"}}}`
	resp, err := protocol.ParseResponse([]byte(body))
	require.NoError(t, err)

	execErr := FromResponse(resp)
	require.NotNil(t, execErr)
	require.Equal(t, map[string]any{"field": "name"}, execErr.Data)
}

func TestFromResponse_NilResponse(t *testing.T) {
	t.Parallel()

	require.Nil(t, FromResponse(nil))
}
