package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultLoader_LoadTOML(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "servers.toml", `
[[servers]]
id = "time"
name = "Time Server"
url = "https://time.example.com/rpc"
enabled = true
timeout = "10s"
auth_token = "secret"
auth_type = "bearer"
capabilities = ["tools"]
version = "2025-03-26"

[servers.headers]
X-Env = "test"

[[servers]]
id = "weather"
url = "http://weather.example.com/rpc"
enabled = false
`)

	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 2)

	s := cfg.Servers[0]
	require.Equal(t, "time", s.ID)
	require.Equal(t, "Time Server", s.Name)
	require.Equal(t, "https://time.example.com/rpc", s.URL)
	require.True(t, s.Enabled)
	require.Equal(t, 10*time.Second, s.CallTimeout())
	require.Equal(t, "secret", s.AuthToken)
	require.Equal(t, "bearer", s.AuthType)
	require.Equal(t, map[string]string{"X-Env": "test"}, s.Headers)
	require.Equal(t, []string{"tools"}, s.Capabilities)
	require.Equal(t, "2025-03-26", s.ProtocolVersion)

	require.False(t, cfg.Servers[1].Enabled)
}

func TestDefaultLoader_LoadYAML(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "servers.yaml", `
servers:
  - id: time
    url: https://time.example.com/rpc
    enabled: true
    timeout: 5s
    auth_token: secret
    auth_type: api_key
`)

	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 1)
	require.Equal(t, 5*time.Second, cfg.Servers[0].CallTimeout())
	require.Equal(t, "api_key", cfg.Servers[0].AuthType)
}

func TestDefaultLoader_LoadFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{
			name: "duplicate server ids",
			contents: `
[[servers]]
id = "a"
url = "https://a.example.com"
[[servers]]
id = "a"
url = "https://a2.example.com"
`,
			wantErr: "duplicate server id",
		},
		{
			name: "empty id",
			contents: `
[[servers]]
id = ""
url = "https://a.example.com"
`,
			wantErr: "empty id",
		},
		{
			name: "missing url",
			contents: `
[[servers]]
id = "a"
`,
			wantErr: "url cannot be empty",
		},
		{
			name: "non-http scheme",
			contents: `
[[servers]]
id = "a"
url = "ftp://a.example.com"
`,
			wantErr: "must use http or https",
		},
		{
			name: "bad timeout",
			contents: `
[[servers]]
id = "a"
url = "https://a.example.com"
timeout = "soon"
`,
			wantErr: "invalid duration",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTempConfig(t, "servers.toml", tc.contents)
			loader := &DefaultLoader{}
			_, err := loader.Load(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDefaultLoader_MissingFile(t *testing.T) {
	t.Parallel()

	loader := &DefaultLoader{}
	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestServerEntry_CallTimeoutDefault(t *testing.T) {
	t.Parallel()

	var s ServerEntry
	require.Equal(t, DefaultTimeout, s.CallTimeout())
}

func TestDuration_TextRoundTrip(t *testing.T) {
	t.Parallel()

	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1h30m")))
	require.Equal(t, Duration(90*time.Minute), d)

	text, err := d.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "1h30m0s", string(text))
}
