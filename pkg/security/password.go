package security

import (
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches a bcrypt hash. A corrupt hash never matches.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// VerifyStatic compares a credential pair against configured values in constant time.
func VerifyStatic(username, password, wantUsername, wantPassword string) bool {
	if wantUsername == "" || wantPassword == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUsername))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(wantPassword))

	return userOK&passOK == 1
}
