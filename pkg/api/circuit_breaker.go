package api

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without calling the API while the breaker is open
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
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

// CircuitBreaker stops issuing searches after consecutive failures and lets
// them through again once resetTimeout has passed
type CircuitBreaker struct {
	maxFailures      int
	resetTimeout     time.Duration
	successThreshold int
	now              func() time.Time

	mu           sync.Mutex
	state        CircuitState
	failures     int
	successCount int
	lastFailTime time.Time
}

// NewCircuitBreaker opens after maxFailures consecutive failures. A half-open
// breaker closes after successThreshold successes and reopens on any failure.
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration, successThreshold int) *CircuitBreaker {
	if maxFailures <= 0 {
		maxFailures = 1
	}
	if successThreshold <= 0 {
		successThreshold = 1
	}

	return &CircuitBreaker{
		maxFailures:      maxFailures,
		resetTimeout:     resetTimeout,
		successThreshold: successThreshold,
		now:              time.Now,
	}
}

// Execute runs fn unless the breaker is open
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.allow(); err != nil {
		return err
	}

	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.lastFailTime) <= cb.resetTimeout {
			return ErrCircuitOpen
		}
		cb.state = StateHalfOpen
		cb.successCount = 0
	}
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailTime = cb.now()
		if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = StateOpen
		}
		return
	}

	if cb.state == StateHalfOpen {
		cb.successCount++
		if cb.successCount < cb.successThreshold {
			return
		}
		cb.state = StateClosed
	}
	cb.failures = 0
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
