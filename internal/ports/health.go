package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDuplicateChecker rejects a second registration under an existing name.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker is implemented by adapters that can report whether their
// dependency is reachable. The relay client registers one for the
// downstream deployment:
//
//	func (rc *RelayClient) Name() string { return "echo-relay" }
//
//	func (rc *RelayClient) Check(ctx context.Context) error {
//	    return rc.pingDownstream(ctx)
//	}
type HealthChecker interface {
	// Name identifies the component in readiness responses. Must be
	// unique within a registry.
	Name() string

	// Check returns nil when the component is healthy. Implementations
	// must honor ctx cancellation.
	Check(ctx context.Context) error
}

// HealthRegistry collects checkers at startup and fans their checks out
// when the readiness endpoint asks.
type HealthRegistry interface {
	// Register adds a checker; ErrDuplicateChecker if the name is taken.
	Register(checker HealthChecker) error

	// CheckAll runs every registered check concurrently under ctx and
	// aggregates the outcome.
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is the coarse healthy/unhealthy verdict.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult aggregates one CheckAll run. Status is unhealthy when any
// individual check failed.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is one component's verdict; Message carries the error text
// on failure.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// DefaultHealthRegistry is the mutex-guarded HealthRegistry used by the
// composition root.
type DefaultHealthRegistry struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
}

// NewHealthRegistry returns an empty registry. An empty registry reports
// healthy: readiness without dependencies is just liveness.
func NewHealthRegistry() *DefaultHealthRegistry {
	return &DefaultHealthRegistry{
		checkers: make(map[string]HealthChecker),
	}
}

// Register adds a checker under its name.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	if _, exists := r.checkers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
	}
	r.checkers[name] = checker

	return nil
}

// CheckAll runs every check on its own goroutine and merges the results.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := make([]HealthChecker, 0, len(r.checkers))
	for _, c := range r.checkers {
		checkers = append(checkers, c)
	}
	r.mu.RUnlock()

	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: time.Now(),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, checker := range checkers {
		wg.Add(1)
		go func(c HealthChecker) {
			defer wg.Done()

			cr := runCheck(ctx, c)

			mu.Lock()
			result.Checks[c.Name()] = cr
			if cr.Status == HealthStatusUnhealthy {
				result.Status = HealthStatusUnhealthy
			}
			mu.Unlock()
		}(checker)
	}
	wg.Wait()

	return result
}

func runCheck(ctx context.Context, c HealthChecker) *CheckResult {
	start := time.Now()
	err := c.Check(ctx)

	cr := &CheckResult{
		Status:   HealthStatusHealthy,
		Duration: time.Since(start),
	}
	if err != nil {
		cr.Status = HealthStatusUnhealthy
		cr.Message = err.Error()
	}

	return cr
}
