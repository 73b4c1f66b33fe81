package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gridsnake/gridsnake/internal/api/handler"
	"github.com/gridsnake/gridsnake/internal/api/middleware"
	"github.com/gridsnake/gridsnake/internal/services/auth"
	"github.com/gridsnake/gridsnake/internal/services/game"
	"github.com/gridsnake/gridsnake/internal/services/runner"
	"github.com/gridsnake/gridsnake/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController game.ControllerInterface
	RunnerManager  *runner.Manager
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	sessionHandler := handler.NewSessionHandler(cfg.GameController, cfg.RunnerManager, cfg.HubManager, cfg.Broadcaster)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Delete).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/start", sessionHandler.Start).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/pause", sessionHandler.Pause).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/stop", sessionHandler.Stop).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/direction", sessionHandler.ChangeDirection).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/events", sessionHandler.Events).Methods(http.MethodGet)

	// Leaderboard (requires auth)
	leaderboard := api.PathPrefix("/leaderboard").Subrouter()
	leaderboard.Use(authMiddleware)
	leaderboard.HandleFunc("", sessionHandler.Leaderboard).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
