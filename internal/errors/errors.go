// Package errors defines the error taxonomy for the MCP client.
//
// Every public operation of the client either returns a value or fails with
// exactly one of the four kinds below; no other error type crosses the
// boundary. Errors are never retried automatically, callers decide.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind tags an Error with its place in the taxonomy.
type Kind string

const (
	// KindConnection covers network failures, timeouts, and malformed
	// transport-level responses. Retryable by the caller.
	KindConnection Kind = "connection"

	// KindProtocol covers replies that violate the expected JSON-RPC shape.
	// Non-retryable; a bug signal.
	KindProtocol Kind = "protocol"

	// KindExecution covers well-formed JSON-RPC errors returned by a server.
	// Carries the original numeric code and message verbatim.
	KindExecution Kind = "execution"

	// KindNotFound covers unknown or disabled server ids and capabilities
	// absent from a listing. Raised before any network call is attempted.
	KindNotFound Kind = "not_found"
)

// Error is the single tagged error variant used throughout the client.
type Error struct {
	// Kind places the error in the taxonomy.
	Kind Kind

	// Code is the JSON-RPC error code; set for execution errors only.
	Code int

	// Message is the human-readable description.
	Message string

	// Data carries the server-supplied error data payload, unchanged.
	Data any

	// Cause is the underlying failure, if any.
	Cause error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindExecution:
		return fmt.Sprintf("%s error %d: %s", e.Kind, e.Code, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s error: %s: %s", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewConnection creates a connection error wrapping the given cause.
func NewConnection(message string, cause error) *Error {
	return &Error{Kind: KindConnection, Message: message, Cause: cause}
}

// NewProtocol creates a protocol error for a malformed JSON-RPC reply.
func NewProtocol(message string) *Error {
	return &Error{Kind: KindProtocol, Message: message}
}

// NewExecution creates an execution error carrying a server-returned
// JSON-RPC code, message and data payload.
func NewExecution(code int, message string, data any) *Error {
	return &Error{Kind: KindExecution, Code: code, Message: message, Data: data}
}

// NewNotFound creates a not-found error.
func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// kindOf extracts the taxonomy kind from any error chain.
func kindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsConnection reports whether err is a connection error.
func IsConnection(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindConnection
}

// IsProtocol reports whether err is a protocol error.
func IsProtocol(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindProtocol
}

// IsExecution reports whether err is an execution error.
func IsExecution(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindExecution
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNotFound
}
