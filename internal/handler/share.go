package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"larder/internal/access"
	"larder/internal/auth"
	"larder/internal/store"
)

type ShareHandler struct {
	lists    *store.ListStore
	resolver *access.Resolver
	logger   *slog.Logger
}

func NewShareHandler(lists *store.ListStore, resolver *access.Resolver, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{lists: lists, resolver: resolver, logger: logger}
}

type shareRequest struct {
	ShareWith uuid.UUID `json:"share_with"`
	Readonly  bool      `json:"readonly"`
}

func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid JSON")
		return
	}

	if err := h.resolver.RequireOwner(user, list); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	if err := h.lists.Share(list, req.ShareWith, req.Readonly); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *ShareHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}
	account, err := uuid.Parse(r.PathValue("account"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid account id")
		return
	}

	if err := h.resolver.RequireOwner(user, list); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	if err := h.lists.Unshare(list, account); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}

	if err := h.resolver.RequireOwner(user, list); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	shares, err := h.lists.Shares(list)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	// account id -> readonly flag, one entry per grantee
	results := make(map[uuid.UUID]bool, len(shares))
	for _, sh := range shares {
		results[sh.Shared] = sh.Readonly
	}

	writeJSON(w, http.StatusOK, map[string]any{"shares": results})
}
