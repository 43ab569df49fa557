// Package domain holds the capability and health types shared across the
// client. Capability entries are parsed from listing replies, tagged with
// their owning server, and replaced wholesale on refresh, never mutated.
package domain

import "github.com/mark3labs/mcp-go/mcp"

const (
	KindTools     CapabilityKind = "tools"
	KindResources CapabilityKind = "resources"
	KindPrompts   CapabilityKind = "prompts"
	KindSamples   CapabilityKind = "samples"
)

// CapabilityKind names one of the listable capability families.
type CapabilityKind string

// Tool is one tool advertised by a server's tools/list reply.
// Server is set at parse time and never reassigned.
type Tool struct {
	Server string   `json:"server"`
	Tool   mcp.Tool `json:"tool"`
}

// Resource is one resource advertised by a server's resources/list reply.
type Resource struct {
	Server   string       `json:"server"`
	Resource mcp.Resource `json:"resource"`
}

// Prompt is one prompt advertised by a server's prompts/list reply.
type Prompt struct {
	Server string     `json:"server"`
	Prompt mcp.Prompt `json:"prompt"`
}

// Sample is one sample advertised by a server's samples/list reply.
// Samples have no counterpart in the MCP SDK types, so the wire shape is
// declared here.
type Sample struct {
	Server      string `json:"server"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}
