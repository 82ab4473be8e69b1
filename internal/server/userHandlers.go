package server

import (
	"errors"
	"net/http"

	"github.com/plankt0n/streamplay-api/internal/model"
	"github.com/plankt0n/streamplay-api/internal/services/user"
)

func (s *Server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var dto model.CreateUserDTO
	if !decode(w, r, &dto) {
		return
	}

	res, err := s.users.Create(r.Context(), dto)
	if err != nil {
		s.userError(w, err, "Error creating user")
		return
	}

	respond(w, res)
}

func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.users.List(r.Context())
	if err != nil {
		s.userError(w, err, "Error listing users")
		return
	}

	respond(w, res)
}

func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		s.userError(w, err, "Error deleting user")
		return
	}

	respond(w, model.MessageResponse{Message: "User deleted"})
}

// userError maps service failures onto responses shared by admin and user endpoints.
func (s *Server) userError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		NotFoundError(w, ErrUserNotFound, "User not found")
	case errors.Is(err, user.ErrUsernameTaken):
		ConflictError(w, ErrUsernameNotUnique, "Username already exists")
	case errors.Is(err, user.ErrInvalidData):
		LogicError(w, ErrInvalidData, "Data is not valid JSON")
	default:
		InternalError(w)
		log.Error().Err(err).Msg(msg)
		return
	}
	log.Debug().Err(err).Msg(msg)
}
