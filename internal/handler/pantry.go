package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"larder/internal/access"
	"larder/internal/auth"
	"larder/internal/model"
	"larder/internal/reconcile"
	"larder/internal/store"
	ws "larder/internal/websocket"
)

type PantryHandler struct {
	pantry   *store.PantryStore
	resolver *access.Resolver
	engine   *reconcile.Engine
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewPantryHandler(pantry *store.PantryStore, resolver *access.Resolver, engine *reconcile.Engine, hub *ws.Hub, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{pantry: pantry, resolver: resolver, engine: engine, hub: hub, logger: logger}
}

func (h *PantryHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.pantry.Items(list)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if items == nil {
		items = []model.PantryItem{}
	}

	writeJSON(w, http.StatusOK, map[string][]model.PantryItem{"items": items})
}

type addPantryRequest struct {
	Name   string `json:"name"`
	Target *int64 `json:"target"`
}

func (h *PantryHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}

	var req addPantryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "name is required")
		return
	}

	if err := h.resolver.RequireAccess(user, list, true); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	item, err := h.pantry.Add(list, req.Name, req.Target)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage(list, "pantry", "created", item.ID))
	writeJSON(w, http.StatusOK, item)
}

type editPantryRequest struct {
	Amount *int64 `json:"amount"`
	Target *int64 `json:"target"`
}

func (h *PantryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}
	item, err := parseItemParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid item id")
		return
	}

	var req editPantryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid JSON")
		return
	}

	if err := h.resolver.RequireAccess(user, list, true); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	if err := h.pantry.Edit(list, item, req.Amount, req.Target); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage(list, "pantry", "updated", item))
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}
	item, err := parseItemParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid item id")
		return
	}

	if err := h.resolver.RequireAccess(user, list, true); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	if err := h.pantry.Delete(list, item); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage(list, "pantry", "deleted", item))
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *PantryHandler) Refill(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}

	if err := h.resolver.RequireAccess(user, list, true); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	if err := h.engine.Refill(list); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage(list, "pantry", "refilled", 0))
	writeJSON(w, http.StatusOK, struct{}{})
}
