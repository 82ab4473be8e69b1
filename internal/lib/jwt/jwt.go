package jwt

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/plankt0n/streamplay-api/internal/logger"
	"github.com/rs/zerolog"
)

type ctxKey string

const CtxKeyClaims ctxKey = "claims"

var log zerolog.Logger = *logger.Log

// Manager issues tokens and gates requests with a secret that is fixed for the process lifetime.
type Manager struct {
	secret        []byte
	validityHours int
}

func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("invalid passed options pointer")
	}
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}

	log = *logger.Log
	log = log.With().Str("name", "jwt").Logger()

	return &Manager{
		secret:        []byte(cfg.Secret),
		validityHours: cfg.SetDefault().ValidityHours,
	}, nil
}

func (m *Manager) IssueAdmin(username string) (string, error) {
	return Sign(NewAdminClaims(username, m.validityHours), m.secret)
}

func (m *Manager) IssueUser(username string, userID int64) (string, error) {
	return Sign(NewUserClaims(username, userID, m.validityHours), m.secret)
}

// Authenticator admits any valid token and stores its Claims in the request context.
func (m *Manager) Authenticator(next http.Handler) http.Handler {
	return m.gate(Authenticate, next)
}

// AdminOnly admits administrator tokens only.
func (m *Manager) AdminOnly(next http.Handler) http.Handler {
	return m.gate(AuthenticateAdmin, next)
}

func (m *Manager) gate(extract func(http.Header, []byte) (Claims, error), next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := extract(r.Header, m.secret)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, CtxKeyClaims, c)
}

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(Claims)
	return c, ok
}

// WriteError writes an authorization rejection. Anything that is not an
// *AuthError is reported as a 401 without detail.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		authErr = Unauthorized(ReasonInvalidToken)
	}

	res := struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}{
		Title:  "Unauthorized",
		Status: authErr.Status,
		Detail: authErr.Reason,
		Code:   "UNAUTHORIZED",
	}
	if authErr.Status == http.StatusForbidden {
		res.Title = "Forbidden"
		res.Code = "FORBIDDEN"
	}

	ev := log.Debug()
	if cause := authErr.Unwrap(); cause != nil {
		ev = ev.Err(cause)
	}
	ev.Str("path", r.URL.Path).Int("status", authErr.Status).Msg(authErr.Reason)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(authErr.Status)
	_ = json.NewEncoder(w).Encode(res)
}
