package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"larder/internal/access"
	"larder/internal/store"
)

// Stable error codes surfaced to clients alongside a description.
const (
	codeInternal      = 1
	codeNotFound      = 2
	codeNotAuthorized = 3
	codeAlreadyExists = 4
	codeInvalidInput  = 5
)

type errBody struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status, code int, description string) {
	writeJSON(w, status, map[string]errBody{"error": {Code: code, Description: description}})
}

// writeFailure maps a core error onto the wire taxonomy. Access failures
// and missing lists both short-circuit before any mutation, so mapping
// here is safe for every operation.
func writeFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "list or item not found")
	case errors.Is(err, access.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, codeNotAuthorized, "access denied")
	case errors.Is(err, store.ErrAlreadyExists):
		writeError(w, http.StatusConflict, codeAlreadyExists, "already exists")
	default:
		logger.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func parseListParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

func parseItemParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("item"), 10, 64)
}
