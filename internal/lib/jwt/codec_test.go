package jwt

import (
	"encoding/base64"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("s3cr3t")

func withClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeFunc
	timeFunc = func() time.Time { return now }
	t.Cleanup(func() { timeFunc = prev })
}

func TestClaimsConstructors(t *testing.T) {
	now := time.Unix(1700000000, 0)
	withClock(t, now)

	t.Run("admin", func(t *testing.T) {
		c := NewAdminClaims("root", 24)
		id, ok := c.UserID()
		assert.False(t, ok)
		assert.Zero(t, id)
		assert.True(t, c.IsAdmin())
		assert.Equal(t, "root", c.Subject())
		assert.Equal(t, now.Add(24*time.Hour).Unix(), c.ExpiresAt().Unix())
	})

	t.Run("user", func(t *testing.T) {
		c := NewUserClaims("alice", 7, 24)
		id, ok := c.UserID()
		assert.True(t, ok)
		assert.Equal(t, int64(7), id)
		assert.False(t, c.IsAdmin())
		assert.Equal(t, "alice", c.Subject())
	})
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, c := range []Claims{
		NewAdminClaims("root", 24),
		NewUserClaims("alice", 7, 24),
		NewUserClaims("bob", 0, 1),
	} {
		token, err := Sign(c, testSecret)
		require.NoError(t, err)
		require.Len(t, strings.Split(token, "."), 3)

		got, err := Verify(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestSignEmptySecret(t *testing.T) {
	_, err := Sign(NewAdminClaims("root", 24), nil)
	require.ErrorIs(t, err, ErrSigning)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := Sign(NewUserClaims("alice", 7, 24), []byte("one"))
	require.NoError(t, err)

	_, err = Verify(token, []byte("two"))
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyTamperedPayload(t *testing.T) {
	token, err := Sign(NewUserClaims("alice", 7, 24), testSecret)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	require.Contains(t, string(raw), `"is_admin":false`)

	forged := strings.Replace(string(raw), `"is_admin":false`, `"is_admin":true`, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = Verify(strings.Join(parts, "."), testSecret)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyTamperedExpiredPayload(t *testing.T) {
	token, err := Sign(NewUserClaims("alice", 7, -1), testSecret)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(raw), `"sub":"alice"`, `"sub":"mallory"`, 1)))

	_, err = Verify(strings.Join(parts, "."), testSecret)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyExpired(t *testing.T) {
	token, err := Sign(NewUserClaims("alice", 7, -1), testSecret)
	require.NoError(t, err)

	_, err = Verify(token, testSecret)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyExpiresAtBoundary(t *testing.T) {
	now := time.Unix(1700000000, 0)
	withClock(t, now)

	c := NewAdminClaims("root", 1)
	token, err := Sign(c, testSecret)
	require.NoError(t, err)

	_, err = verifyAt(token, testSecret, c.ExpiresAt().Add(-time.Second))
	require.NoError(t, err)

	_, err = verifyAt(token, testSecret, c.ExpiresAt())
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyMalformed(t *testing.T) {
	enc := base64.RawURLEncoding.EncodeToString
	header := enc([]byte(`{"alg":"HS256","typ":"JWT"}`))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two segments", "a.b"},
		{"four segments", "a.b.c.d"},
		{"garbage payload", header + ".!!!." + enc([]byte("sig"))},
		{"payload not json", header + "." + enc([]byte("nope")) + "." + enc([]byte("sig"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.token, testSecret)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestVerifyMissingRequiredFields(t *testing.T) {
	enc := base64.RawURLEncoding.EncodeToString
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name    string
		payload string
	}{
		{"missing sub", `{"user_id":null,"is_admin":true,"exp":` + itoa(exp) + `}`},
		{"missing is_admin", `{"sub":"root","user_id":null,"exp":` + itoa(exp) + `}`},
		{"missing exp", `{"sub":"root","user_id":null,"is_admin":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signRaw(t, enc([]byte(`{"alg":"HS256","typ":"JWT"}`))+"."+enc([]byte(tt.payload)))
			_, err := Verify(token, testSecret)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	enc := base64.RawURLEncoding.EncodeToString
	exp := time.Now().Add(time.Hour).Unix()
	token := enc([]byte(`{"alg":"none","typ":"JWT"}`)) + "." +
		enc([]byte(`{"sub":"root","user_id":null,"is_admin":true,"exp":`+itoa(exp)+`}`)) + "."

	_, err := Verify(token, testSecret)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyTrustsSignedFields(t *testing.T) {
	enc := base64.RawURLEncoding.EncodeToString
	exp := time.Now().Add(time.Hour).Unix()
	token := signRaw(t, enc([]byte(`{"alg":"HS256","typ":"JWT"}`))+"."+
		enc([]byte(`{"sub":"odd","user_id":3,"is_admin":true,"exp":`+itoa(exp)+`}`)))

	c, err := Verify(token, testSecret)
	require.NoError(t, err)
	id, ok := c.UserID()
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)
	assert.True(t, c.IsAdmin())
}

func TestAdminTokenLifetime(t *testing.T) {
	issued := time.Unix(1700000000, 0)
	withClock(t, issued)

	token, err := Sign(NewAdminClaims("root", 24), testSecret)
	require.NoError(t, err)

	got, err := verifyAt(token, testSecret, issued.Add(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "root", got.Subject())
	assert.True(t, got.IsAdmin())
	_, ok := got.UserID()
	assert.False(t, ok)

	raw, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[1])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"user_id":null`)

	_, err = verifyAt(token, testSecret, issued.Add(25*time.Hour))
	require.ErrorIs(t, err, ErrExpired)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func signRaw(t *testing.T, signingString string) string {
	t.Helper()
	sig, err := signingMethod.Sign(signingString, testSecret)
	require.NoError(t, err)
	return signingString + "." + base64.RawURLEncoding.EncodeToString(sig)
}
