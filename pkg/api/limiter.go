package api

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// ConcurrencyLimiter bounds the number of requests in flight at once.
// Permits are counted with compare-and-swap; waiters poll with a capped backoff.
type ConcurrencyLimiter struct {
	maxConcurrent  int64
	current        int64
	acquireTimeout time.Duration

	totalAcquires   int64
	timeoutFailures int64
}

// LimiterStats is a snapshot of the limiter counters
type LimiterStats struct {
	MaxConcurrent   int   `json:"max_concurrent"`
	CurrentActive   int   `json:"current_active"`
	TotalAcquires   int64 `json:"total_acquires"`
	TimeoutFailures int64 `json:"timeout_failures"`
}

// NewConcurrencyLimiter creates a limiter allowing maxConcurrent permits
func NewConcurrencyLimiter(maxConcurrent int, acquireTimeout time.Duration) *ConcurrencyLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if acquireTimeout <= 0 {
		acquireTimeout = 5 * time.Second
	}

	return &ConcurrencyLimiter{
		maxConcurrent:  int64(maxConcurrent),
		acquireTimeout: acquireTimeout,
	}
}

// Acquire waits for a permit until the acquire timeout or ctx ends
func (l *ConcurrencyLimiter) Acquire(ctx context.Context) error {
	atomic.AddInt64(&l.totalAcquires, 1)

	if l.tryAcquire() {
		return nil
	}

	deadline := time.Now().Add(l.acquireTimeout)
	delay := 5 * time.Millisecond

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			atomic.AddInt64(&l.timeoutFailures, 1)
			return ctx.Err()
		case <-time.After(delay):
		}

		if l.tryAcquire() {
			return nil
		}

		if delay < 50*time.Millisecond {
			delay += 5 * time.Millisecond
		}
	}

	atomic.AddInt64(&l.timeoutFailures, 1)
	return fmt.Errorf("no request permit within %v (max %d in flight)", l.acquireTimeout, l.maxConcurrent)
}

func (l *ConcurrencyLimiter) tryAcquire() bool {
	for {
		current := atomic.LoadInt64(&l.current)
		if current >= l.maxConcurrent {
			return false
		}
		if atomic.CompareAndSwapInt64(&l.current, current, current+1) {
			return true
		}
	}
}

// Release returns a permit taken by Acquire
func (l *ConcurrencyLimiter) Release() {
	for {
		current := atomic.LoadInt64(&l.current)
		if current <= 0 {
			return
		}
		if atomic.CompareAndSwapInt64(&l.current, current, current-1) {
			return
		}
	}
}

// Stats returns the limiter counters
func (l *ConcurrencyLimiter) Stats() LimiterStats {
	return LimiterStats{
		MaxConcurrent:   int(l.maxConcurrent),
		CurrentActive:   int(atomic.LoadInt64(&l.current)),
		TotalAcquires:   atomic.LoadInt64(&l.totalAcquires),
		TimeoutFailures: atomic.LoadInt64(&l.timeoutFailures),
	}
}
