package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var _ Loader = (*DefaultLoader)(nil)

// Loader loads client configuration from a file path.
type Loader interface {
	Load(path string) (*Config, error)
}

// Auth types understood by the transport when deriving the authorization
// header. Any other value is sent verbatim in the Authorization header.
const (
	AuthTypeBearer = "bearer"
	AuthTypeAPIKey = "api_key"
	AuthTypeBasic  = "basic"
)

// DefaultTimeout applies to servers that do not configure their own.
const DefaultTimeout = 30 * time.Second

// Config represents the client configuration file structure.
type Config struct {
	Servers []ServerEntry `json:"servers" toml:"servers" yaml:"servers"`
}

// ServerEntry is the immutable configuration of a single remote MCP server.
// Entries are created once at startup and live for the process lifetime.
type ServerEntry struct {
	// ID uniquely identifies the server within the registry.
	ID string `json:"id" toml:"id" yaml:"id"`

	// Name is the human-readable display name.
	Name string `json:"name" toml:"name" yaml:"name"`

	// URL is the http(s) endpoint requests are POSTed to.
	URL string `json:"url" toml:"url" yaml:"url"`

	// Enabled controls whether the server accepts calls. Disabled servers
	// stay in the registry for introspection but are rejected by lookups.
	Enabled bool `json:"enabled" toml:"enabled" yaml:"enabled"`

	// Timeout is the hard per-call deadline, e.g. "30s".
	Timeout Duration `json:"timeout,omitempty" toml:"timeout,omitempty" yaml:"timeout,omitempty"`

	// AuthToken is the credential material used to build the auth header.
	AuthToken string `json:"authToken,omitempty" toml:"auth_token,omitempty" yaml:"auth_token,omitempty"`

	// AuthType selects the auth header shape: bearer, api_key, basic,
	// or any other value to send the token verbatim.
	AuthType string `json:"authType,omitempty" toml:"auth_type,omitempty" yaml:"auth_type,omitempty"`

	// Headers are extra request headers; fixed JSON content headers and the
	// derived auth header override same-named keys.
	Headers map[string]string `json:"headers,omitempty" toml:"headers,omitempty" yaml:"headers,omitempty"`

	// Capabilities lists what the server declares it serves, e.g. "tools".
	Capabilities []string `json:"capabilities,omitempty" toml:"capabilities,omitempty" yaml:"capabilities,omitempty"`

	// ProtocolVersion is the MCP protocol version the server speaks.
	ProtocolVersion string `json:"version,omitempty" toml:"version,omitempty" yaml:"version,omitempty"`
}

// CallTimeout returns the configured per-call deadline, falling back to
// DefaultTimeout when unset.
func (s ServerEntry) CallTimeout() time.Duration {
	if s.Timeout > 0 {
		return time.Duration(s.Timeout)
	}
	return DefaultTimeout
}

// Duration wraps time.Duration so values can be expressed as strings
// (e.g. "30s") in TOML and YAML configuration files.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
