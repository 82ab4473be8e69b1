package server

import (
	"net/http"

	"github.com/plankt0n/streamplay-api/internal/model"
)

func (s *Server) userGetDataHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := userIdentity(w, r)
	if !ok {
		return
	}
	s.getData(w, r, id)
}

func (s *Server) userUpdateDataHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := userIdentity(w, r)
	if !ok {
		return
	}
	s.updateData(w, r, id)
}

func (s *Server) adminGetDataHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.getData(w, r, id)
}

func (s *Server) adminUpdateDataHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.updateData(w, r, id)
}

func (s *Server) adminUpdateStationsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var dto model.UpdateStationsDTO
	if !decode(w, r, &dto) {
		return
	}

	data, err := s.users.UpdateStations(r.Context(), id, dto.Stations)
	if err != nil {
		s.userError(w, err, "Error updating stations")
		return
	}

	respond(w, model.DataResponse{Data: data})
}

func (s *Server) getData(w http.ResponseWriter, r *http.Request, id int64) {
	data, err := s.users.GetData(r.Context(), id)
	if err != nil {
		s.userError(w, err, "Error reading data")
		return
	}

	respond(w, model.DataResponse{Data: data})
}

func (s *Server) updateData(w http.ResponseWriter, r *http.Request, id int64) {
	var dto model.UpdateDataDTO
	if !decode(w, r, &dto) {
		return
	}

	data, err := s.users.UpdateData(r.Context(), id, dto.Data)
	if err != nil {
		s.userError(w, err, "Error updating data")
		return
	}

	respond(w, model.DataResponse{Data: data})
}
