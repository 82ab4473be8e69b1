package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/plankt0n/streamplay-api/internal/model"
	"github.com/plankt0n/streamplay-api/internal/services/auth"
)

func (s *Server) adminLoginHandler(w http.ResponseWriter, r *http.Request) {
	s.login(w, r, s.auth.AdminLogin, "Invalid admin credentials")
}

func (s *Server) userLoginHandler(w http.ResponseWriter, r *http.Request) {
	s.login(w, r, s.auth.UserLogin, "Invalid credentials")
}

type loginFunc func(ctx context.Context, username, password string) (*model.LoginResponse, error)

func (s *Server) login(w http.ResponseWriter, r *http.Request, fn loginFunc, rejected string) {
	var dto model.LoginDTO
	if !decode(w, r, &dto) {
		return
	}

	res, err := fn(r.Context(), dto.Username, dto.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			UnauthorizedError(w, ErrInvalidCredentials, rejected)
			log.Warn().Str("username", dto.Username).Msg("Rejected login")
		default:
			InternalError(w)
			log.Error().Err(err).Msg("Error login")
		}
		return
	}

	respond(w, res)
}
