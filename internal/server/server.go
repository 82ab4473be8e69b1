package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/plankt0n/streamplay-api/internal/logger"
	"github.com/plankt0n/streamplay-api/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var log zerolog.Logger

type Auth interface {
	AdminLogin(ctx context.Context, username, password string) (*model.LoginResponse, error)
	UserLogin(ctx context.Context, username, password string) (*model.LoginResponse, error)
}

type Users interface {
	Create(ctx context.Context, dto model.CreateUserDTO) (*model.UserResponse, error)
	List(ctx context.Context) ([]model.UserResponse, error)
	Delete(ctx context.Context, id int64) error
	GetData(ctx context.Context, id int64) (json.RawMessage, error)
	UpdateData(ctx context.Context, id int64, data json.RawMessage) (json.RawMessage, error)
	UpdateStations(ctx context.Context, id int64, stations []json.RawMessage) (json.RawMessage, error)
}

// Gate decides whether a request may reach a handler.
type Gate interface {
	Authenticator(next http.Handler) http.Handler
	AdminOnly(next http.Handler) http.Handler
}

type Server struct {
	srv   *http.Server
	auth  Auth
	users Users
}

func NewServer(addr string, gate Gate, auth Auth, users Users) *Server {
	log = *logger.Log
	log = log.With().Str("name", "http").Logger()

	s := &Server{
		auth:  auth,
		users: users,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(gate),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) routes(gate Gate) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get(`/health`, healthHandler)

	r.Group(func(r chi.Router) {
		r.Post(`/api/admin/login`, s.adminLoginHandler)
		r.Post(`/api/user/login`, s.userLoginHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(gate.AdminOnly)

		r.Post(`/api/admin/users`, s.createUserHandler)
		r.Get(`/api/admin/users`, s.listUsersHandler)
		r.Delete(`/api/admin/users/{id}`, s.deleteUserHandler)
		r.Get(`/api/admin/users/{id}/data`, s.adminGetDataHandler)
		r.Put(`/api/admin/users/{id}/data`, s.adminUpdateDataHandler)
		r.Put(`/api/admin/users/{id}/stations`, s.adminUpdateStationsHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(gate.Authenticator)

		r.Get(`/api/user/data`, s.userGetDataHandler)
		r.Put(`/api/user/data`, s.userUpdateDataHandler)
	})

	r.NotFound(notFoundHandler)

	return r
}

func (s *Server) Run(ctx context.Context, runner *errgroup.Group) {
	log.Info().Str("addr", s.srv.Addr).Msg("Http server started.")

	runner.Go(func() error {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Http server stopped.")

	nctx, stop := context.WithTimeout(context.WithoutCancel(ctx), time.Second*10)
	defer stop()

	return s.srv.Shutdown(nctx)
}
