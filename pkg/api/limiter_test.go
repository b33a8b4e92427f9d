package api

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestConcurrencyLimiter_AcquireRelease(t *testing.T) {
	limiter := NewConcurrencyLimiter(2, time.Second)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Expected first acquisition, got error: %v", err)
	}
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Expected second acquisition, got error: %v", err)
	}

	// Third acquisition waits until the context gives up
	timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if err := limiter.Acquire(timeoutCtx); err == nil {
		t.Fatal("Expected error for third acquisition")
	}

	limiter.Release()
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Expected acquisition after release, got error: %v", err)
	}

	stats := limiter.Stats()
	if stats.CurrentActive != 2 {
		t.Errorf("Expected 2 active permits, got %d", stats.CurrentActive)
	}
	if stats.TimeoutFailures != 1 {
		t.Errorf("Expected 1 timeout failure, got %d", stats.TimeoutFailures)
	}
}

func TestConcurrencyLimiter_AcquireTimeout(t *testing.T) {
	limiter := NewConcurrencyLimiter(1, 30*time.Millisecond)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := limiter.Acquire(ctx); err == nil {
		t.Fatal("Expected acquire timeout")
	}
}

func TestConcurrencyLimiter_ReleaseWithoutAcquire(t *testing.T) {
	limiter := NewConcurrencyLimiter(1, time.Second)
	limiter.Release()

	if active := limiter.Stats().CurrentActive; active != 0 {
		t.Errorf("Expected no active permits, got %d", active)
	}
}

func TestConcurrencyLimiter_NeverExceedsMax(t *testing.T) {
	const maxConcurrent = 3
	limiter := NewConcurrencyLimiter(maxConcurrent, 2*time.Second)

	var (
		wg      sync.WaitGroup
		active  int64
		peak    int64
		peakMux sync.Mutex
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(context.Background()); err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			defer limiter.Release()

			now := atomic.AddInt64(&active, 1)
			peakMux.Lock()
			if now > peak {
				peak = now
			}
			peakMux.Unlock()

			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&active, -1)
		}()
	}
	wg.Wait()

	if peak > maxConcurrent {
		t.Errorf("Peak concurrency %d exceeded max %d", peak, maxConcurrent)
	}
}
