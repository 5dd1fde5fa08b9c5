package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fnstats/internal/api/handler"
	"github.com/mcoot/fnstats/internal/api/middleware"
	commonmw "github.com/mcoot/fnstats/internal/middleware"
	"github.com/mcoot/fnstats/internal/services/auth"
	"github.com/mcoot/fnstats/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Storage     storage.Storage
	AuthService *auth.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Storage, cfg.AuthService)
	statsHandler := handler.NewStatsHandler(cfg.Storage)

	// Create middleware
	apiKeyMiddleware := middleware.APIKey(cfg.AuthService)

	// Request id first so that recovery and logging can see it. Logging wraps
	// recovery so a recovered panic is logged with its 500.
	r.Use(commonmw.RequestID())
	r.Use(commonmw.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	// Public routes
	r.HandleFunc("/", handler.Health).Methods(http.MethodGet)
	r.HandleFunc("/login", playerHandler.Login).Methods(http.MethodPost)

	// Routes guarded by the static API key
	protected := r.NewRoute().Subrouter()
	protected.Use(apiKeyMiddleware)
	protected.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/stats", statsHandler.Current).Methods(http.MethodGet)
	protected.HandleFunc("/stats_hist", statsHandler.History).Methods(http.MethodGet)
	protected.HandleFunc("/player_create", playerHandler.Create).Methods(http.MethodPut)

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"Not Found"}}`))
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(`{"error":{"code":"METHOD_NOT_ALLOWED","message":"Method Not Allowed"}}`))
}
