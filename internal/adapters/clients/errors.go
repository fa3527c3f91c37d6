// Package clients provides the instrumented HTTP client shared by the
// news and Telegram adapters.
package clients

import "errors"

// Transport-level failures. The acl package translates them into domain errors.
var (
	// ErrCircuitOpen is returned while the breaker for a downstream is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last transport error once every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
