package errors

import (
	"context"
	stderrors "errors"
	"net"

	"github.com/agentry/mcplink/internal/protocol"
)

// FromTransport translates a transport-level failure into a connection error.
// Deadline expiry is labelled as a timeout so callers can tell it apart from
// an unreachable server, but both carry the same retryable kind.
func FromTransport(cause error) *Error {
	var already *Error
	if stderrors.As(cause, &already) {
		return already
	}

	switch {
	case stderrors.Is(cause, context.DeadlineExceeded):
		return NewConnection("request timed out", cause)
	case isTimeout(cause):
		return NewConnection("request timed out", cause)
	default:
		return NewConnection("request failed", cause)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

// FromResponse translates a parsed JSON-RPC reply into an execution error.
// It returns nil when the reply indicates success. The server's message is
// surfaced verbatim; when the server omitted one, the canonical message for
// the code is used, which resolves to the generic unknown-error label for
// codes outside the reserved ranges.
func FromResponse(resp *protocol.Response) *Error {
	if resp == nil || !resp.IsError() {
		return nil
	}

	errObj := resp.Err()
	message := errObj.Message
	if message == "" {
		message = protocol.MessageFor(errObj.Code)
	}

	return NewExecution(errObj.Code, message, errObj.Data)
}
