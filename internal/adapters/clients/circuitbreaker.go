package clients

import (
	"sync"
	"time"
)

// State is the breaker's current disposition toward outbound calls.
type State int

const (
	// StateClosed passes every call through.
	StateClosed State = iota

	// StateOpen rejects every call until the cool-down elapses.
	StateOpen

	// StateHalfOpen admits a bounded number of probe calls.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig tunes when the breaker trips and recovers.
type CircuitBreakerConfig struct {
	// MaxFailures trips the breaker after this many consecutive failures.
	MaxFailures int

	// Timeout is the open-state cool-down before probing resumes.
	Timeout time.Duration

	// HalfOpenLimit bounds concurrent probes and is also the number of
	// consecutive probe successes needed to close again.
	HalfOpenLimit int
}

// CircuitBreaker guards a downstream deployment: consecutive failures trip
// it open, a cool-down later it lets a few probes through, and sustained
// probe success closes it again. Any probe failure reopens it immediately.
type CircuitBreaker struct {
	mu        sync.RWMutex
	state     State
	cfg       CircuitBreakerConfig
	failures  int // consecutive, closed state only
	probeOK   int // consecutive probe successes, half-open only
	inFlight  int // probes currently admitted, half-open only
	trippedAt time.Time

	onStateChange func(from, to State)

	clock func() time.Time // swapped in tests
}

// NewCircuitBreaker returns a closed breaker with the given thresholds.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		state: StateClosed,
		cfg:   cfg,
		clock: time.Now,
	}
}

// OnStateChange registers a hook invoked on every transition, typically to
// log or update a metric. The hook runs on its own goroutine.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Allow reports whether a call may proceed right now. An open breaker whose
// cool-down has elapsed moves to half-open here, admitting the caller as the
// first probe.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if cb.clock().Sub(cb.trippedAt) < cb.cfg.Timeout {
			return false
		}
		cb.shift(StateHalfOpen)
		cb.inFlight = 1
		return true

	case StateHalfOpen:
		if cb.inFlight >= cb.cfg.HalfOpenLimit {
			return false
		}
		cb.inFlight++
		return true

	default:
		return false
	}
}

// RecordSuccess notes a completed call. Enough consecutive probe successes
// close a half-open breaker.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.inFlight--
		cb.probeOK++
		if cb.probeOK >= cb.cfg.HalfOpenLimit {
			cb.shift(StateClosed)
		}
	}
}

// RecordFailure notes a failed call. A closed breaker trips once the
// consecutive-failure threshold is reached; a half-open breaker reopens on
// the first probe failure.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.trippedAt = cb.clock()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			cb.shift(StateOpen)
		}

	case StateHalfOpen:
		cb.inFlight--
		cb.shift(StateOpen)
	}
}

// State returns the breaker's current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// shift transitions state and resets the counters. Caller holds the lock.
func (cb *CircuitBreaker) shift(to State) {
	if cb.state == to {
		return
	}

	from := cb.state
	cb.state = to
	cb.failures = 0
	cb.probeOK = 0

	if cb.onStateChange != nil {
		go cb.onStateChange(from, to)
	}
}
