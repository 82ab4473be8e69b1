package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/plankt0n/streamplay-api/internal/lib/jwt"
	"github.com/plankt0n/streamplay-api/internal/model"
)

const maxBodyBytes = 4 << 20

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	NotFoundError(w, "ENDPOINT_NOT_FOUND", "Not found")
}

// decode reads and validates a request body. It writes the error response itself.
func decode(w http.ResponseWriter, r *http.Request, dto model.Validator) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		log.Error().Err(err).Msg("Error parsing request body")
		ParsingError(w)
		return false
	}

	if err := dto.Validate(); len(err) > 0 {
		log.Error().Msgf("Error validating request body: %v", err)
		ValidationError(w, err)
		return false
	}

	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		BadRequestError(w)
		return 0, false
	}
	return id, true
}

// userIdentity resolves the user id of the authenticated caller. Administrator
// tokens carry no user id and are rejected with 403.
func userIdentity(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		jwt.WriteError(w, r, jwt.Unauthorized(jwt.ReasonMissingHeader))
		return 0, false
	}

	id, err := jwt.RequireUser(claims)
	if err != nil {
		jwt.WriteError(w, r, err)
		return 0, false
	}

	return id, true
}

func respond(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, v)
}
