package transport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/agentry/mcplink/internal/config"
	"github.com/agentry/mcplink/internal/errors"
	"github.com/agentry/mcplink/internal/protocol"
)

func newTestCaller(t *testing.T) *Caller {
	t.Helper()

	caller, err := NewCaller(hclog.NewNullLogger())
	require.NoError(t, err)
	return caller
}

func serverFor(t *testing.T, url string) config.ServerEntry {
	t.Helper()

	return config.ServerEntry{
		ID:      "test",
		URL:     url,
		Enabled: true,
		Timeout: config.Duration(2 * time.Second),
	}
}

func TestHeaders_AuthTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		authType   string
		wantHeader string
		wantValue  string
	}{
		{
			name:       "bearer",
			authType:   "bearer",
			wantHeader: "Authorization",
			wantValue:  "Bearer tok123",
		},
		{
			name:       "api key",
			authType:   "api_key",
			wantHeader: "X-API-Key",
			wantValue:  "tok123",
		},
		{
			name:       "basic",
			authType:   "basic",
			wantHeader: "Authorization",
			wantValue:  "Basic " + base64.StdEncoding.EncodeToString([]byte("tok123")),
		},
		{
			name:       "anything else verbatim",
			authType:   "custom-scheme",
			wantHeader: "Authorization",
			wantValue:  "tok123",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := config.ServerEntry{
				ID:        "s",
				AuthToken: "tok123",
				AuthType:  tc.authType,
				Headers:   map[string]string{"X-Custom": "user"},
			}

			h := Headers(server)

			require.Equal(t, tc.wantValue, h.Get(tc.wantHeader))
			require.Equal(t, "application/json", h.Get("Content-Type"))
			require.Equal(t, "application/json", h.Get("Accept"))
			require.Equal(t, "user", h.Get("X-Custom"))

			// Exactly one authorization-style header.
			authStyle := 0
			if h.Get("Authorization") != "" {
				authStyle++
			}
			if h.Get("X-API-Key") != "" {
				authStyle++
			}
			require.Equal(t, 1, authStyle)
		})
	}
}

func TestHeaders_DerivedHeadersOverrideUserHeaders(t *testing.T) {
	t.Parallel()

	server := config.ServerEntry{
		ID:        "s",
		AuthToken: "tok",
		AuthType:  "bearer",
		Headers: map[string]string{
			"Authorization": "user-supplied",
			"Content-Type":  "text/plain",
			"accept":        "text/html",
		},
	}

	h := Headers(server)
	require.Equal(t, "Bearer tok", h.Get("Authorization"))
	require.Equal(t, "application/json", h.Get("Content-Type"))
	require.Equal(t, "application/json", h.Get("Accept"))
}

func TestHeaders_NoTokenMeansNoAuthHeader(t *testing.T) {
	t.Parallel()

	h := Headers(config.ServerEntry{ID: "s"})
	require.Empty(t, h.Get("Authorization"))
	require.Empty(t, h.Get("X-API-Key"))
	require.Equal(t, "application/json", h.Get("Content-Type"))
}

func TestCaller_Call(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req protocol.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotMethod = req.Method
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"ok":true}}`))
	}))
	t.Cleanup(srv.Close)

	caller := newTestCaller(t)
	server := serverFor(t, srv.URL)
	server.AuthToken = "tok"
	server.AuthType = "bearer"

	resp, err := caller.Call(context.Background(), server, protocol.MethodPing, nil)
	require.NoError(t, err)
	require.True(t, resp.HasResult())
	require.Equal(t, protocol.MethodPing, gotMethod)
	require.Equal(t, "Bearer tok", gotAuth)
}

func TestCaller_MonotonicIDs(t *testing.T) {
	t.Parallel()

	var ids []int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req protocol.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		ids = append(ids, req.ID)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`))
	}))
	t.Cleanup(srv.Close)

	caller := newTestCaller(t)
	server := serverFor(t, srv.URL)

	for range 3 {
		_, err := caller.Call(context.Background(), server, protocol.MethodPing, nil)
		require.NoError(t, err)
	}

	require.Equal(t, []int64{1, 2, 3}, ids)
}

func TestCaller_ServerErrorPassesThrough(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`))
	}))
	t.Cleanup(srv.Close)

	caller := newTestCaller(t)

	resp, err := caller.Call(context.Background(), serverFor(t, srv.URL), "tools/call", nil)
	require.NoError(t, err)
	require.True(t, resp.IsError())
	require.Equal(t, -32601, resp.Err().Code)
}

func TestCaller_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`))
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	caller := newTestCaller(t)
	server := serverFor(t, srv.URL)
	server.Timeout = config.Duration(50 * time.Millisecond)

	_, err := caller.Call(context.Background(), server, protocol.MethodPing, nil)
	require.Error(t, err)
	require.True(t, errors.IsConnection(err))
}

func TestCaller_Unreachable(t *testing.T) {
	t.Parallel()

	caller := newTestCaller(t)
	server := serverFor(t, "http://127.0.0.1:1/rpc")

	_, err := caller.Call(context.Background(), server, protocol.MethodPing, nil)
	require.Error(t, err)
	require.True(t, errors.IsConnection(err))
}

func TestCaller_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	caller := newTestCaller(t)

	_, err := caller.Call(context.Background(), serverFor(t, srv.URL), protocol.MethodPing, nil)
	require.Error(t, err)
	require.True(t, errors.IsConnection(err))
}

func TestCaller_BodyNotJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	caller := newTestCaller(t)

	_, err := caller.Call(context.Background(), serverFor(t, srv.URL), protocol.MethodPing, nil)
	require.Error(t, err)
	require.True(t, errors.IsConnection(err))
}

func TestCaller_MissingResultAndError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1}`))
	}))
	t.Cleanup(srv.Close)

	caller := newTestCaller(t)

	_, err := caller.Call(context.Background(), serverFor(t, srv.URL), protocol.MethodPing, nil)
	require.Error(t, err)
	require.True(t, errors.IsProtocol(err))
}
