package auth

import (
	"context"

	"github.com/pkg/errors"
	"github.com/plankt0n/streamplay-api/internal/logger"
	"github.com/plankt0n/streamplay-api/internal/model"
	"github.com/plankt0n/streamplay-api/internal/storage"
	"github.com/plankt0n/streamplay-api/pkg/security"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthStorage interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// TokenIssuer signs claims for a freshly verified principal.
type TokenIssuer interface {
	IssueAdmin(username string) (string, error)
	IssueUser(username string, userID int64) (string, error)
}

type AdminCredentials struct {
	Username string
	Password string
}

type Auth struct {
	storage AuthStorage
	tokens  TokenIssuer
	admin   AdminCredentials
}

func New(storage AuthStorage, tokens TokenIssuer, admin AdminCredentials) *Auth {
	log = *logger.Log
	log = log.With().Str("name", "auth-service").Logger()

	return &Auth{storage: storage, tokens: tokens, admin: admin}
}

func (a *Auth) AdminLogin(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	if !security.VerifyStatic(username, password, a.admin.Username, a.admin.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := a.tokens.IssueAdmin(username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate admin token")
		return nil, errors.Wrap(err, "generate admin token")
	}

	return &model.LoginResponse{
		Token:    token,
		Username: username,
		IsAdmin:  true,
	}, nil
}

func (a *Auth) UserLogin(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := a.storage.GetUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEntityNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, errors.Wrap(err, "login")
		}
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := a.tokens.IssueUser(user.Username, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate user token")
		return nil, errors.Wrap(err, "generate user token")
	}

	return &model.LoginResponse{
		Token:    token,
		Username: user.Username,
		IsAdmin:  false,
	}, nil
}
