package server

import (
	"encoding/json"
	"net/http"
)

const (
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrUserNotFound       = "USER_NOT_FOUND"
	ErrUsernameNotUnique  = "USERNAME_NOT_UNIQUE"
	ErrInvalidData        = "INVALID_DATA"
)

type CommonError struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

type Validation struct {
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail"`
	Code   string            `json:"code"`
	Errors map[string]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

func ParsingError(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, CommonError{
		Title:  "Parsing error occurred",
		Status: http.StatusBadRequest,
		Detail: "Parsing error",
		Code:   "PARSING_ERROR",
	})
}

func ValidationError(w http.ResponseWriter, err map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, Validation{
		Title:  "One or more model validation errors occurred",
		Status: http.StatusUnprocessableEntity,
		Detail: "See the errors property for details",
		Code:   "VALIDATION_ERROR",
		Errors: err,
	})
}

func LogicError(w http.ResponseWriter, code, detail string) {
	writeJSON(w, http.StatusBadRequest, CommonError{
		Title:  "Logic error occurred",
		Status: http.StatusBadRequest,
		Detail: detail,
		Code:   code,
	})
}

func ConflictError(w http.ResponseWriter, code, detail string) {
	writeJSON(w, http.StatusConflict, CommonError{
		Title:  "Conflict error",
		Status: http.StatusConflict,
		Detail: detail,
		Code:   code,
	})
}

func UnauthorizedError(w http.ResponseWriter, code, detail string) {
	writeJSON(w, http.StatusUnauthorized, CommonError{
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
		Code:   code,
	})
}

func NotFoundError(w http.ResponseWriter, code, detail string) {
	writeJSON(w, http.StatusNotFound, CommonError{
		Title:  "Not found",
		Status: http.StatusNotFound,
		Detail: detail,
		Code:   code,
	})
}

func InternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, CommonError{
		Title:  "Resource temporarily unavailable",
		Status: http.StatusInternalServerError,
		Detail: "Resource temporarily unavailable",
		Code:   "UNKNOWN_ERROR",
	})
}

func BadRequestError(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, CommonError{
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: "Bad request",
		Code:   "BAD_REQUEST",
	})
}
