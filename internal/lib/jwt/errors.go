package jwt

import (
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrMalformed        = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrSigning          = errors.New("token signing failed")
)

const (
	ReasonMissingHeader = "missing authorization header"
	ReasonInvalidToken  = "invalid token"
	ReasonAdminRequired = "admin access required"
	ReasonUserRequired  = "operation requires a user identity"
)

// AuthError is an authorization decision that rejects the request. Status is
// 401 or 403; Reason is safe to show to the caller.
type AuthError struct {
	Status int
	Reason string
	cause  error
}

func (e *AuthError) Error() string {
	return e.Reason
}

// Unwrap exposes the codec failure for logging. It is never written to the response.
func (e *AuthError) Unwrap() error {
	return e.cause
}

func Unauthorized(reason string) *AuthError {
	return &AuthError{Status: http.StatusUnauthorized, Reason: reason}
}

func Forbidden(reason string) *AuthError {
	return &AuthError{Status: http.StatusForbidden, Reason: reason}
}
