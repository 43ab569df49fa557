package protocol

// Standard JSON-RPC 2.0 error codes (-32700..-32600).
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// MCP-specific error codes (-32001..-32011), disjoint from the standard range.
const (
	CodeInvalidProtocolVersion = -32001
	CodeServerNotInitialized   = -32002
	CodeUnknownCapability      = -32003
	CodeToolNotFound           = -32004
	CodeResourceNotFound       = -32005
	CodePromptNotFound         = -32006
	CodeSampleNotFound         = -32007
	CodePermissionDenied       = -32008
	CodeRateLimited            = -32009
	CodeServerUnavailable      = -32010
	CodeRequestTimeout         = -32011
)

// UnknownErrorMessage is the fallback label for codes outside the reserved ranges.
const UnknownErrorMessage = "Unknown error"

var canonicalMessages = map[int]string{
	CodeParseError:     "Parse error",
	CodeInvalidRequest: "Invalid request",
	CodeMethodNotFound: "Method not found",
	CodeInvalidParams:  "Invalid params",
	CodeInternalError:  "Internal error",

	CodeInvalidProtocolVersion: "Invalid protocol version",
	CodeServerNotInitialized:   "Server not initialized",
	CodeUnknownCapability:      "Unknown capability",
	CodeToolNotFound:           "Tool not found",
	CodeResourceNotFound:       "Resource not found",
	CodePromptNotFound:         "Prompt not found",
	CodeSampleNotFound:         "Sample not found",
	CodePermissionDenied:       "Permission denied",
	CodeRateLimited:            "Rate limited",
	CodeServerUnavailable:      "Server unavailable",
	CodeRequestTimeout:         "Request timed out",
}

// IsReservedCode reports whether code falls in the standard JSON-RPC range
// or the MCP-specific range.
func IsReservedCode(code int) bool {
	_, ok := canonicalMessages[code]
	return ok
}

// MessageFor returns the canonical human-readable message for a reserved
// error code, or UnknownErrorMessage for any code outside the two ranges.
func MessageFor(code int) string {
	if msg, ok := canonicalMessages[code]; ok {
		return msg
	}
	return UnknownErrorMessage
}
