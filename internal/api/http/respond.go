package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps the business error taxonomy onto HTTP statuses. Anything
// unrecognized is an infrastructure failure and stays opaque to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		authz      *domain.AuthorizationError
		notFound   *domain.NotFoundError
		state      *domain.StateError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validation.Reason, Field: validation.Field})
	case errors.As(err, &state):
		writeJSON(w, http.StatusConflict, errorBody{Error: state.Error()})
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: conflict.Reason})
	case errors.As(err, &authz):
		writeJSON(w, http.StatusForbidden, errorBody{Error: authz.Error()})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: notFound.Error()})
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}
