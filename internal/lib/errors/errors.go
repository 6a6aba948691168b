package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrUpstreamUnavailable  = errors.New("upstream unavailable")
	ErrUpstreamRejected     = errors.New("upstream rejected request")
	ErrUpstream             = errors.New("upstream error")
	ErrForbiddenDestination = errors.New("forbidden destination")
	ErrDecode               = errors.New("envelope is not valid utf-8")
	ErrMalformedEnvelope    = errors.New("malformed envelope")
	ErrInternal             = errors.New("internal error")
)

// UpstreamRejectedError carries the collaborator's status and message verbatim.
type UpstreamRejectedError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamRejectedError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrUpstreamRejected, e.StatusCode, e.Message)
}

func (e *UpstreamRejectedError) Unwrap() error {
	return ErrUpstreamRejected
}

// UpstreamStatusError is returned when an upstream answers with an unexpected status.
type UpstreamStatusError struct {
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", ErrUpstream, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *UpstreamStatusError) Unwrap() error {
	return ErrUpstream
}

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
