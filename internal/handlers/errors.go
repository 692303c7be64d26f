package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/league-api/internal/repo"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// internalError logs err with the request ID and answers 500.
func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op,
		"request_id", chimw.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"err", err)
	JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
}

// writeRepoError maps repository sentinels for reads, creates and updates.
func writeRepoError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, entity+" not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrDuplicate):
		JSONError(w, entity+" already exists", http.StatusConflict)
	case errors.Is(err, repo.ErrInvalidReference):
		JSONError(w, "referenced record does not exist", http.StatusBadRequest)
	default:
		internalError(w, r, entity+" query failed", err)
	}
}

// writeDeleteError is writeRepoError for deletes, where a foreign key
// violation means other rows still point at the target.
func writeDeleteError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	if errors.Is(err, repo.ErrInvalidReference) {
		JSONError(w, entity+" is still referenced by other records", http.StatusConflict)
		return
	}
	writeRepoError(w, r, entity, err)
}
