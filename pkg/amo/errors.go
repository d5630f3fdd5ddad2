package amo

import "fmt"

// FetchError reports a failed page request, either at the transport level
// or as an unexpected HTTP status. Fatal to the whole run.
type FetchError struct {
	Page       int
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("fetch page %d: unexpected status %d", e.Page, e.StatusCode)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// MalformedEnvelopeError reports a response body that does not decode into
// the expected search envelope. Fatal to the whole run.
type MalformedEnvelopeError struct {
	Page int
	Err  error
}

// Error implements the error interface.
func (e *MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("malformed envelope on page %d: %v", e.Page, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *MalformedEnvelopeError) Unwrap() error {
	return e.Err
}
