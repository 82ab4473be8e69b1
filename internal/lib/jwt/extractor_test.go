package jwt

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bearer(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}

func mustSign(t *testing.T, c Claims) string {
	t.Helper()
	token, err := Sign(c, testSecret)
	require.NoError(t, err)
	return token
}

func requireAuthError(t *testing.T, err error, status int, reason string) *AuthError {
	t.Helper()
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, status, authErr.Status)
	assert.Equal(t, reason, authErr.Reason)
	return authErr
}

func TestAuthenticate(t *testing.T) {
	userToken := mustSign(t, NewUserClaims("alice", 7, 24))

	tests := []struct {
		name   string
		header http.Header
		reason string
	}{
		{"no header", http.Header{}, ReasonMissingHeader},
		{"basic scheme", http.Header{"Authorization": {"Basic YWxpY2U6cHc="}}, ReasonMissingHeader},
		{"empty bearer", http.Header{"Authorization": {"Bearer "}}, ReasonMissingHeader},
		{"garbage token", bearer("not-a-token"), ReasonInvalidToken},
		{"expired token", bearer(mustSign(t, NewUserClaims("alice", 7, -1))), ReasonInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Authenticate(tt.header, testSecret)
			requireAuthError(t, err, http.StatusUnauthorized, tt.reason)
		})
	}

	t.Run("valid token", func(t *testing.T) {
		c, err := Authenticate(bearer(userToken), testSecret)
		require.NoError(t, err)
		assert.Equal(t, "alice", c.Subject())
	})

	t.Run("lowercase scheme", func(t *testing.T) {
		_, err := Authenticate(http.Header{"Authorization": {"bearer " + userToken}}, testSecret)
		require.NoError(t, err)
	})
}

func TestAuthenticateHidesCodecReason(t *testing.T) {
	expired := mustSign(t, NewUserClaims("alice", 7, -1))
	foreign, err := Sign(NewUserClaims("alice", 7, 24), []byte("other"))
	require.NoError(t, err)

	_, errExpired := Authenticate(bearer(expired), testSecret)
	_, errForeign := Authenticate(bearer(foreign), testSecret)

	assert.Equal(t, errExpired.Error(), errForeign.Error())
	assert.ErrorIs(t, errExpired, ErrExpired)
	assert.ErrorIs(t, errForeign, ErrInvalidSignature)
}

func TestAuthenticateAdmin(t *testing.T) {
	t.Run("user token", func(t *testing.T) {
		_, err := AuthenticateAdmin(bearer(mustSign(t, NewUserClaims("alice", 7, 24))), testSecret)
		requireAuthError(t, err, http.StatusForbidden, ReasonAdminRequired)
	})

	t.Run("missing header propagates", func(t *testing.T) {
		_, err := AuthenticateAdmin(http.Header{}, testSecret)
		requireAuthError(t, err, http.StatusUnauthorized, ReasonMissingHeader)
	})

	t.Run("admin token", func(t *testing.T) {
		c, err := AuthenticateAdmin(bearer(mustSign(t, NewAdminClaims("root", 24))), testSecret)
		require.NoError(t, err)
		assert.True(t, c.IsAdmin())
	})
}

func TestRequireUser(t *testing.T) {
	id, err := RequireUser(NewUserClaims("alice", 7, 24))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = RequireUser(NewAdminClaims("root", 24))
	requireAuthError(t, err, http.StatusForbidden, ReasonUserRequired)
}

func TestManagerMiddleware(t *testing.T) {
	_, err := NewManager(&Config{})
	require.Error(t, err)

	m, err := NewManager(&Config{Secret: string(testSecret)})
	require.NoError(t, err)

	adminToken, err := m.IssueAdmin("root")
	require.NoError(t, err)
	userToken, err := m.IssueUser("alice", 7)
	require.NoError(t, err)

	var seen Claims
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, found := ClaimsFromContext(r.Context())
		require.True(t, found)
		seen = c
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		h      http.Handler
		token  string
		status int
		detail string
	}{
		{"any identity, user", m.Authenticator(ok), userToken, http.StatusNoContent, ""},
		{"any identity, admin", m.Authenticator(ok), adminToken, http.StatusNoContent, ""},
		{"any identity, none", m.Authenticator(ok), "", http.StatusUnauthorized, ReasonMissingHeader},
		{"admin only, user", m.AdminOnly(ok), userToken, http.StatusForbidden, ReasonAdminRequired},
		{"admin only, admin", m.AdminOnly(ok), adminToken, http.StatusNoContent, ""},
		{"admin only, forged", m.AdminOnly(ok), userToken + "x", http.StatusUnauthorized, ReasonInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			tt.h.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			if tt.detail == "" {
				return
			}

			var body struct {
				Status int    `json:"status"`
				Detail string `json:"detail"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.detail, body.Detail)
		})
	}

	id, ok2 := seen.UserID()
	assert.False(t, ok2)
	assert.Zero(t, id)
}
