package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var signingMethod = jwt.SigningMethodHS256

// Sign encodes c as an HS256 token authenticated with secret.
func Sign(c Claims, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: empty secret", ErrSigning)
	}

	token := jwt.NewWithClaims(signingMethod, c.payload())
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of token and returns its claims unchanged.
// Errors match ErrMalformed, ErrInvalidSignature or ErrExpired.
func Verify(token string, secret []byte) (Claims, error) {
	return verifyAt(token, secret, timeFunc())
}

func verifyAt(token string, secret []byte, now time.Time) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	var p payload
	_, err := parser.ParseWithClaims(token, &p, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}

	if p.Subject == "" {
		return Claims{}, errors.Wrap(ErrMalformed, "sub missing")
	}
	if p.IsAdmin == nil {
		return Claims{}, errors.Wrap(ErrMalformed, "is_admin missing")
	}

	return p.claims(), nil
}

// classify maps parser failures onto the codec taxonomy. The signature is
// checked before any claim, so a tampered expired token is ErrInvalidSignature.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
