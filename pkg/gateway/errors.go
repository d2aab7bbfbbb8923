package gateway

import (
	"errors"
	"fmt"
)

// NetworkError is a transport failure: the request never produced a
// usable response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendError is a response the backend rejected: non-2xx status or
// an envelope with success=false. Message carries the backend-supplied
// text when available.
type BackendError struct {
	Op      string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s failed (%d): %s", e.Op, e.Status, e.Message)
}

// NotFoundError is returned when the requested identity is unknown.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// AsNetwork checks if an error is a NetworkError and returns it.
func AsNetwork(err error) (*NetworkError, bool) {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}

// AsBackend checks if an error is a BackendError and returns it.
func AsBackend(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// AsNotFound checks if an error is a NotFoundError and returns it.
func AsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// UserMessage returns the text a caller should surface for err: the
// backend-supplied message when there is one, a generic line otherwise.
func UserMessage(err error) string {
	if be, ok := AsBackend(err); ok && be.Message != "" {
		return be.Message
	}
	if nf, ok := AsNotFound(err); ok {
		return nf.Error()
	}
	if _, ok := AsNetwork(err); ok {
		return "server unreachable, check your connection"
	}
	return "an unexpected error occurred"
}
