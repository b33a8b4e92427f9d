package api

import (
	"context"
	"errors"
	"net/http"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	ErrorSeverityTemporary ErrorSeverity = iota // no error, or nothing to act on
	ErrorSeverityRetryable                      // the same query may succeed later
	ErrorSeverityFatal                          // retrying the query cannot help
)

func (s ErrorSeverity) String() string {
	switch s {
	case ErrorSeverityTemporary:
		return "temporary"
	case ErrorSeverityRetryable:
		return "retryable"
	case ErrorSeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ErrorClassifier defines interface for error classification
type ErrorClassifier interface {
	ClassifyError(err error) ErrorSeverity
	ShouldStopProcessing(err error) bool
}

// SearchErrorClassifier classifies search client errors by their type and status code
type SearchErrorClassifier struct{}

// NewSearchErrorClassifier creates new error classifier
func NewSearchErrorClassifier() ErrorClassifier {
	return &SearchErrorClassifier{}
}

// ClassifyError classifies error by severity level
func (c *SearchErrorClassifier) ClassifyError(err error) ErrorSeverity {
	if err == nil {
		return ErrorSeverityTemporary
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, ErrNoCredentials) || errors.Is(err, ErrCircuitOpen) {
		return ErrorSeverityFatal
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return ErrorSeverityRetryable
	}

	var responseErr *UnexpectedResponseError
	if errors.As(err, &responseErr) {
		switch code := responseErr.StatusCode; {
		case code == http.StatusTooManyRequests, code >= 500:
			return ErrorSeverityRetryable
		default:
			// auth failures, bad requests and undecodable bodies repeat identically
			return ErrorSeverityFatal
		}
	}

	// Default to retryable for unknown errors
	return ErrorSeverityRetryable
}

// ShouldStopProcessing determines if processing should be halted
func (c *SearchErrorClassifier) ShouldStopProcessing(err error) bool {
	return c.ClassifyError(err) == ErrorSeverityFatal
}
