package security

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

const (
	uppercaseLetters = "ACDEFGHJKMPQRTWXYZ"
	lowercaseLetters = "acdefghjkpqrtwxyz"
	digits           = "23479"
	specialChars     = "!@#%^&*_+-=.,?"

	MinGeneratedLength = 4
)

var charsets = []string{uppercaseLetters, lowercaseLetters, digits, specialChars}

// GeneratePassword returns a random password of the given length containing at
// least one character of every charset. Look-alike characters are excluded.
func GeneratePassword(length int) (string, error) {
	if length < MinGeneratedLength {
		return "", errors.Errorf("length has to be at least %d", MinGeneratedLength)
	}

	var all string
	for _, cs := range charsets {
		all += cs
	}

	out := make([]byte, length)
	for i := range out {
		source := all
		if i < len(charsets) {
			source = charsets[i]
		}

		n, err := randomIndex(len(source))
		if err != nil {
			return "", err
		}
		out[i] = source[n]
	}

	// Fisher-Yates, so the guaranteed characters are not always at the front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}

	return string(out), nil
}

func randomIndex(n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("empty source")
	}

	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "read random")
	}

	return int(v.Int64()), nil
}
