package tokens

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded token payload.
type Claims struct {
	UserID     NumericID `json:"user_id"`
	UniqueName string    `json:"unique_name"`
	jwt.RegisteredClaims
}

// NumericID is a user identifier that the backend may encode either as a
// JSON number or as a numeric string.
type NumericID int64

func (id *NumericID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user_id %q: %w", string(b), err)
	}
	*id = NumericID(v)
	return nil
}

// Decode extracts the payload of token without verifying its signature. The
// backend is the only party that can verify it; the client just reads who it
// is and when the token stops being usable.
func Decode(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
