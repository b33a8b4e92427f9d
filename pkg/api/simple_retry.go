package api

import (
	"context"
	"math"
	"time"
)

// SimpleRetry is the host-side retry policy around a search. The search client
// itself never retries.
type SimpleRetry struct {
	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
	classifier        ErrorClassifier
}

// NewSimpleRetry creates a retry policy with exponential backoff that gives up
// early on errors the classifier marks fatal
func NewSimpleRetry(maxRetries int, retryDelay time.Duration) *SimpleRetry {
	return &SimpleRetry{
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		backoffMultiplier: 2.0,
		classifier:        NewSearchErrorClassifier(),
	}
}

// Execute runs fn until it succeeds, fails fatally or runs out of retries
func (sr *SimpleRetry) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= sr.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == sr.maxRetries {
			break
		}
		if sr.classifier.ShouldStopProcessing(err) {
			return err
		}

		delay := time.Duration(float64(sr.retryDelay) * math.Pow(sr.backoffMultiplier, float64(attempt)))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// MaxRetries returns the number of retries after the first attempt
func (sr *SimpleRetry) MaxRetries() int {
	return sr.maxRetries
}
