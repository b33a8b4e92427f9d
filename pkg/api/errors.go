package api

import "fmt"

// TransportError wraps a network level failure of a search request
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("glassdoor transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// UnexpectedResponseError reports a response the client cannot interpret:
// a status outside 200/204/404, or a 200 whose body does not decode.
type UnexpectedResponseError struct {
	StatusCode int
	Cause      error
}

func (e *UnexpectedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("could not execute external search query - status %d: %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("could not execute external search query - status %d", e.StatusCode)
}

func (e *UnexpectedResponseError) Unwrap() error {
	return e.Cause
}
