package skedda

import "fmt"

// ErrTokenNotFound is returned when neither the markup scan nor the
// substring scan could locate a request verification token in the
// booking page. An empty token is never returned as success.
var ErrTokenNotFound = fmt.Errorf("could not find request verification token")

// NetworkError wraps a transport-level failure (dns, dial, tls, timeout).
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network failure: %s", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx response from the remote application.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected response status: %d", e.Code)
}

// DecodeError wraps a body that was expected to be JSON but is not.
type DecodeError struct {
	Err error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response body: %s", e.Err)
}

func (e DecodeError) Unwrap() error {
	return e.Err
}
