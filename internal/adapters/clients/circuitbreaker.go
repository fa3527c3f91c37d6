package clients

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// CircuitBreakerConfig configures the circuit breaker behavior.
type CircuitBreakerConfig struct {
	// Name identifies the breaker in logs.
	Name string

	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures int

	// Timeout is how long to wait in open state before transitioning to half-open.
	Timeout time.Duration

	// HalfOpenLimit is the number of probe requests allowed while half-open.
	// The circuit closes once that many probes succeed in a row.
	HalfOpenLimit int
}

// CircuitBreaker guards one downstream service.
// It wraps gobreaker's two-step breaker so the caller can report the outcome
// after the response has been inspected, not just when the call returns.
//
// State transitions:
//   - Closed → Open: After MaxFailures consecutive failures
//   - Open → HalfOpen: After Timeout duration has passed
//   - HalfOpen → Closed: After HalfOpenLimit consecutive successes
//   - HalfOpen → Open: On any failure
type CircuitBreaker struct {
	breaker *gobreaker.TwoStepCircuitBreaker
}

// NewCircuitBreaker creates a circuit breaker. onStateChange may be nil.
func NewCircuitBreaker(cfg CircuitBreakerConfig, onStateChange func(from, to gobreaker.State)) *CircuitBreaker {
	maxFailures := cfg.MaxFailures
	if maxFailures < 1 {
		maxFailures = 1
	}

	halfOpen := cfg.HalfOpenLimit
	if halfOpen < 1 {
		halfOpen = 1
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: uint32(halfOpen), //nolint:gosec // bounded by config validation
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures) //nolint:gosec // bounded by config validation
		},
	}

	if onStateChange != nil {
		settings.OnStateChange = func(_ string, from, to gobreaker.State) {
			onStateChange(from, to)
		}
	}

	return &CircuitBreaker{breaker: gobreaker.NewTwoStepCircuitBreaker(settings)}
}

// Allow reserves a slot for one request. The returned function must be called
// exactly once with the outcome. Returns ErrCircuitOpen when the request is
// rejected.
func (cb *CircuitBreaker) Allow() (func(success bool), error) {
	done, err := cb.breaker.Allow()
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
		return nil, err
	}

	return done, nil
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}
