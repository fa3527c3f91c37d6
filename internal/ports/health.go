package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDuplicateChecker is returned when attempting to register a health checker
// with a name that is already registered.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker is implemented by upstreams that can be probed before a run.
// The preflight step checks every registered upstream and refuses to start
// the run if one of them is unhealthy.
//
// Example implementation:
//
//	func (c *TelegramClient) Name() string { return "telegram" }
//
//	func (c *TelegramClient) Check(ctx context.Context) error {
//	    return c.getMe(ctx)
//	}
type HealthChecker interface {
	// Name returns a unique identifier for this health check.
	Name() string

	// Check performs the health check and returns an error if unhealthy.
	// Implementations should respect context cancellation and deadlines.
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health state.
type HealthStatus string

const (
	// HealthStatusHealthy indicates all checks passed.
	HealthStatusHealthy HealthStatus = "healthy"

	// HealthStatusUnhealthy indicates at least one check failed.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult contains the aggregated health check results.
type HealthResult struct {
	Status HealthStatus

	// Checks holds individual results in registration order.
	Checks []CheckResult

	Timestamp time.Time
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Name     string
	Status   HealthStatus
	Err      error
	Duration time.Duration
}

// Err joins the errors of every failed check, or returns nil.
func (r *HealthResult) Err() error {
	var errs []error

	for _, check := range r.Checks {
		if check.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", check.Name, check.Err))
		}
	}

	return errors.Join(errs...)
}

// HealthRegistry runs registered checks one after another.
type HealthRegistry struct {
	mu       sync.RWMutex
	checkers []HealthChecker
}

// NewHealthRegistry creates a new health registry.
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{
		checkers: make([]HealthChecker, 0),
	}
}

// Register adds a health checker to the registry.
// Returns an error if a checker with the same name is already registered.
func (r *HealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, c := range r.checkers {
		if c.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.checkers = append(r.checkers, checker)

	return nil
}

// Len returns the number of registered checkers.
func (r *HealthRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.checkers)
}

// CheckAll runs every registered check sequentially in registration order.
func (r *HealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := make([]HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make([]CheckResult, 0, len(checkers)),
		Timestamp: time.Now(),
	}

	for _, checker := range checkers {
		start := time.Now()
		err := checker.Check(ctx)

		check := CheckResult{
			Name:     checker.Name(),
			Status:   HealthStatusHealthy,
			Err:      err,
			Duration: time.Since(start),
		}

		if err != nil {
			check.Status = HealthStatusUnhealthy
			result.Status = HealthStatusUnhealthy
		}

		result.Checks = append(result.Checks, check)
	}

	return result
}
