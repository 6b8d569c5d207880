package upstream

import (
	"fmt"
	"strings"
)

// NetworkError wraps a transport-level failure (DNS, connect, timeout). It is
// retryable.
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a 5xx upstream response. It is retryable.
type ServerError struct {
	Operation string
	Status    int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error during %s: status %d", e.Operation, e.Status)
}

// ClientError is a 4xx upstream response. It is terminal; retrying the same
// request will not change the outcome.
type ClientError struct {
	Operation string
	Status    int
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error during %s: status %d", e.Operation, e.Status)
}

// ValidationError means the response body is malformed or missing required
// top-level fields. Terminal: a malformed response will not fix itself on
// retry.
type ValidationError struct {
	Operation string
	Missing   []string
	Reason    string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid response for %s: missing fields %s", e.Operation, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid response for %s: %s", e.Operation, e.Reason)
}
