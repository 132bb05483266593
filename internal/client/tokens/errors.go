package tokens

import "errors"

var (
	ErrTokenNotFound = errors.New("token not found")
	ErrUserNotFound  = errors.New("stored user not found")
	ErrInvalidToken  = errors.New("invalid token")
)
