package jwt

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// Authenticate extracts the bearer token from h and verifies it with secret.
// Every codec failure collapses into the same "invalid token" rejection.
func Authenticate(h http.Header, secret []byte) (Claims, error) {
	token, ok := bearerToken(h)
	if !ok {
		return Claims{}, Unauthorized(ReasonMissingHeader)
	}

	claims, err := Verify(token, secret)
	if err != nil {
		authErr := Unauthorized(ReasonInvalidToken)
		authErr.cause = err
		return Claims{}, authErr
	}

	return claims, nil
}

// AuthenticateAdmin is Authenticate restricted to administrator claims.
func AuthenticateAdmin(h http.Header, secret []byte) (Claims, error) {
	claims, err := Authenticate(h, secret)
	if err != nil {
		return Claims{}, err
	}

	if !claims.IsAdmin() {
		return Claims{}, Forbidden(ReasonAdminRequired)
	}

	return claims, nil
}

// RequireUser returns the user id carried by c. Administrator claims have none.
func RequireUser(c Claims) (int64, error) {
	id, ok := c.UserID()
	if !ok {
		return 0, Forbidden(ReasonUserRequired)
	}

	return id, nil
}

func bearerToken(h http.Header) (string, bool) {
	v := strings.TrimSpace(h.Get("Authorization"))
	if len(v) <= len(bearerPrefix) || !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(v[len(bearerPrefix):])
	return token, token != ""
}
