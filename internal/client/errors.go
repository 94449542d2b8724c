package client

import (
	"errors"
	"fmt"
)

// TransportError covers everything that prevented a usable response: network
// failures, timeouts and 5xx answers. The caller may suggest a retry but the
// client never retries on its own.
type TransportError struct {
	Resource string
	Err      error
}

func (e *TransportError) Error() string {
	return e.Resource + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFoundError maps a 404 from the remote service.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// RejectedError maps a non-404 4xx: the server understood the request and
// refused it. An oversell rejection arrives here and is an expected outcome,
// not a client bug.
type RejectedError struct {
	Resource   string
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request rejected with status %d", e.Resource, e.StatusCode)
	}
	return e.Resource + ": " + e.Message
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsRejected(err error) bool {
	var rj *RejectedError
	return errors.As(err, &rj)
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
