package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"larder/internal/access"
	"larder/internal/auth"
	"larder/internal/model"
	"larder/internal/reconcile"
	"larder/internal/store"
	ws "larder/internal/websocket"
)

type ListHandler struct {
	lists    *store.ListStore
	resolver *access.Resolver
	engine   *reconcile.Engine
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewListHandler(lists *store.ListStore, resolver *access.Resolver, engine *reconcile.Engine, hub *ws.Hub, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: lists, resolver: resolver, engine: engine, hub: hub, logger: logger}
}

type createListRequest struct {
	Name string `json:"name"`
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())

	var req createListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "name is required")
		return
	}

	list, err := h.lists.Create(user, req.Name)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]uuid.UUID{"id": list.ID})
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())

	results, err := h.lists.ListForUser(user)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

type readListResponse struct {
	Items    []model.ListItem `json:"items"`
	Readonly bool             `json:"readonly"`
}

func (h *ListHandler) Read(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}

	lvl, err := h.resolver.Resolve(user, list)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if lvl == access.LevelNone {
		writeFailure(w, h.logger, access.ErrNotAuthorized)
		return
	}

	items, err := h.lists.Items(list)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if items == nil {
		items = []model.ListItem{}
	}

	writeJSON(w, http.StatusOK, readListResponse{
		Items:    items,
		Readonly: lvl == access.LevelSharedRead,
	})
}

type addItemRequest struct {
	Name   string  `json:"name"`
	Amount *string `json:"amount"`
}

func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := auth.UserID(r.Context())
	list, err := parseListParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid list id")
		return
	}

	var req addItemRequest
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

	item, err := h.lists.AddItem(list, user, req.Name, req.Amount)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage(list, "item", "created", item.ID))
	writeJSON(w, http.StatusOK, map[string]int64{"id": item.ID})
}

type updateItemRequest struct {
	Name   *string `json:"name"`
	Amount *string `json:"amount"`
}

func (h *ListHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
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

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid JSON")
		return
	}

	if err := h.resolver.RequireAccess(user, list, true); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	if err := h.lists.UpdateItem(list, item, req.Name, req.Amount); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage(list, "item", "updated", item))
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *ListHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
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

	if err := h.engine.DeleteItem(list, item); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage(list, "item", "deleted", item))
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.lists.Delete(list); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage(list, "list", "deleted", 0))
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *ListHandler) SetPublic(w http.ResponseWriter, r *http.Request) {
	h.setPublic(w, r, true)
}

func (h *ListHandler) RemovePublic(w http.ResponseWriter, r *http.Request) {
	h.setPublic(w, r, false)
}

func (h *ListHandler) setPublic(w http.ResponseWriter, r *http.Request, public bool) {
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

	if err := h.lists.SetPublic(list, public); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}
