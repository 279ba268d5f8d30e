package handler

import (
	"log/slog"
	"net/http"

	"larder/internal/access"
	"larder/internal/auth"
	"larder/internal/store"
)

type HistoryHandler struct {
	history  *store.HistoryStore
	resolver *access.Resolver
	logger   *slog.Logger
}

func NewHistoryHandler(history *store.HistoryStore, resolver *access.Resolver, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, resolver: resolver, logger: logger}
}

// Suggestions returns item names the caller previously added to the list,
// filtered by the search query, for autocompletion.
func (h *HistoryHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}

	if err := h.resolver.RequireAccess(user, list, false); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	matches, err := h.history.Suggestions(list, user, r.URL.Query().Get("search"))
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if matches == nil {
		matches = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"matches": matches})
}
