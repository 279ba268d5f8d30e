package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"larder/internal/auth"
	"larder/internal/store"
)

type AccountHandler struct {
	users  *store.UserStore
	tokens *auth.Tokens
	logger *slog.Logger
}

func NewAccountHandler(users *store.UserStore, tokens *auth.Tokens, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{users: users, tokens: tokens, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid JSON")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	if _, err := h.users.Create(req.Username, string(hash)); err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid JSON")
		return
	}

	user, err := h.users.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, codeNotAuthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Mint(user.ID)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Search resolves a username to an account id so a list owner can address
// share grants. Only exact matches are returned.
func (h *AccountHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	user, err := h.users.GetByUsername(name)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "account not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]uuid.UUID{"id": user.ID})
}
