package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidBaseURL = errors.New("invalid base url")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrUnavailable    = errors.New("server unavailable")
	ErrRequestFailed  = errors.New("request failed")
	ErrEmptyData      = errors.New("envelope has no data")
)

// ResponseError is the failure of a single API call.
type ResponseError struct {
	Method   string
	Resource string
	// Response is nil when the request never got an answer.
	Response *Response
	// Kind is one of the package sentinel errors.
	Kind error
	// Err is the transport error, if any.
	Err error
}

func (e *ResponseError) Error() string {
	if e.Response == nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Method, e.Resource, e.Kind, e.Err)
	}
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: %v (%d): %s", e.Method, e.Resource, e.Kind, e.Response.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: %v (%d)", e.Method, e.Resource, e.Kind, e.Response.StatusCode)
}

func (e *ResponseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// StatusCode is 0 for transport failures.
func (e *ResponseError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Message is the envelope errorMessage, or "" when the body carries none.
func (e *ResponseError) Message() string {
	if e.Response == nil {
		return ""
	}
	env, err := e.Response.Envelope()
	if err != nil {
		return ""
	}
	return env.ErrorMessage
}

// kindForStatus maps a non-2xx status to its sentinel error.
func kindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrRequestFailed
	}
}
