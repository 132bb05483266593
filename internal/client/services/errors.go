package services

import (
	"errors"
	"fmt"
)

var (
	ErrLoginFailed        = errors.New("login failed")
	ErrUserDisabled       = errors.New("user is disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// LoginError is returned by Login and SetUser. Message carries the backend
// errorMessage when the backend sent one.
type LoginError struct {
	// Kind is ErrLoginFailed or ErrUserDisabled.
	Kind    error
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *LoginError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
