package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"larder/internal/access"
	"larder/internal/auth"
	"larder/internal/handler"
	"larder/internal/middleware"
	"larder/internal/reconcile"
	"larder/internal/store"
	ws "larder/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	accountH    *handler.AccountHandler
	listH       *handler.ListHandler
	shareH      *handler.ShareHandler
	pantryH     *handler.PantryHandler
	historyH    *handler.HistoryHandler
	tokens      *auth.Tokens
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, tokens *auth.Tokens, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	historyStore := store.NewHistoryStore(db)
	listStore := store.NewListStore(db, historyStore)
	pantryStore := store.NewPantryStore(db)
	userStore := store.NewUserStore(db)

	resolver := access.NewResolver(db)
	engine := reconcile.New(db)

	return &Server{
		db:          db,
		hub:         hub,
		accountH:    handler.NewAccountHandler(userStore, tokens, logger.With("component", "account")),
		listH:       handler.NewListHandler(listStore, resolver, engine, hub, logger.With("component", "list")),
		shareH:      handler.NewShareHandler(listStore, resolver, logger.With("component", "share")),
		pantryH:     handler.NewPantryHandler(pantryStore, resolver, engine, hub, logger.With("component", "pantry")),
		historyH:    handler.NewHistoryHandler(historyStore, resolver, logger.With("component", "history")),
		tokens:      tokens,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no token required)
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.accountH.Register))
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.accountH.Login))
	outerMux.HandleFunc("GET /api/list/{id}/public", s.listH.PublicView)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.tokens)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	limited := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)(http.HandlerFunc(h))
	return limited.ServeHTTP
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/search/account/{name}", s.accountH.Search)

	// List routes
	mux.HandleFunc("POST /api/list", s.listH.Create)
	mux.HandleFunc("GET /api/list", s.listH.List)
	mux.HandleFunc("GET /api/list/{id}", s.listH.Read)
	mux.HandleFunc("POST /api/list/{id}", s.listH.AddItem)
	mux.HandleFunc("DELETE /api/list/{id}", s.listH.Delete)
	mux.HandleFunc("PATCH /api/list/{id}/{item}", s.listH.UpdateItem)
	mux.HandleFunc("DELETE /api/list/{id}/{item}", s.listH.DeleteItem)
	mux.HandleFunc("PUT /api/list/{id}/public", s.listH.SetPublic)
	mux.HandleFunc("DELETE /api/list/{id}/public", s.listH.RemovePublic)

	// Share routes (owner-only, enforced in the handlers)
	mux.HandleFunc("PUT /api/share/{id}", s.shareH.Share)
	mux.HandleFunc("GET /api/share/{id}", s.shareH.List)
	mux.HandleFunc("DELETE /api/share/{id}/{account}", s.shareH.Unshare)

	// Pantry routes
	mux.HandleFunc("GET /api/pantry/{id}", s.pantryH.Get)
	mux.HandleFunc("POST /api/pantry/{id}", s.pantryH.Add)
	mux.HandleFunc("POST /api/pantry/{id}/refill", s.pantryH.Refill)
	mux.HandleFunc("PATCH /api/pantry/{id}/{item}", s.pantryH.Edit)
	mux.HandleFunc("DELETE /api/pantry/{id}/{item}", s.pantryH.Delete)

	// History suggestions
	mux.HandleFunc("GET /api/history/{id}", s.historyH.Suggestions)

	// WebSocket live updates
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
