package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gridsnake/gridsnake/internal/api/middleware"
	"github.com/gridsnake/gridsnake/internal/api/request"
	"github.com/gridsnake/gridsnake/internal/api/response"
	"github.com/gridsnake/gridsnake/internal/model"
	"github.com/gridsnake/gridsnake/internal/services/game"
	"github.com/gridsnake/gridsnake/internal/services/runner"
	"github.com/gridsnake/gridsnake/internal/sse"
)

const defaultLeaderboardLimit = 10

// SessionHandler handles game session endpoints
type SessionHandler struct {
	controller  game.ControllerInterface
	runner      *runner.Manager
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller game.ControllerInterface, runnerManager *runner.Manager, hubManager *sse.HubManager, broadcaster *sse.Broadcaster) *SessionHandler {
	return &SessionHandler{
		controller:  controller,
		runner:      runnerManager,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.controller.CreateSession(r.Context(), player.ID, req.Width, req.Height)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	session, err := h.controller.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	if _, err := h.ownedSession(r, id); err != nil {
		WriteError(w, err)
		return
	}

	h.runner.Halt(id)
	h.hubManager.RemoveHub(id)

	if err := h.controller.DeleteSession(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Start handles POST /api/v1/sessions/{id}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	prior, err := h.ownedSession(r, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.controller.Start(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if session.Mode == model.ModeRunning {
		h.runner.Launch(id)

		event := model.EventSessionStarted
		if prior.Mode == model.ModePaused {
			event = model.EventResumed
		}
		h.broadcaster.PublishModeChange(session, event)
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Pause handles POST /api/v1/sessions/{id}/pause
func (h *SessionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	prior, err := h.ownedSession(r, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.controller.Pause(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if prior.Mode == model.ModeRunning && session.Mode == model.ModePaused {
		h.runner.Halt(id)
		h.broadcaster.PublishModeChange(session, model.EventPaused)
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Stop handles POST /api/v1/sessions/{id}/stop
func (h *SessionHandler) Stop(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	prior, err := h.ownedSession(r, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.controller.Stop(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if prior.Mode != model.ModeGameOver && session.Mode == model.ModeGameOver {
		h.runner.Halt(id)
		h.broadcaster.PublishFrame(session)
		h.broadcaster.PublishGameOver(session)
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// ChangeDirection handles POST /api/v1/sessions/{id}/direction
func (h *SessionHandler) ChangeDirection(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	if _, err := h.ownedSession(r, id); err != nil {
		WriteError(w, err)
		return
	}

	var req request.ChangeDirectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	direction, err := model.ParseDirection(req.Direction)
	if err != nil {
		WriteError(w, err)
		return
	}

	accepted, err := h.controller.ChangeDirection(r.Context(), id, direction)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.controller.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DirectionResponse{
		Accepted: accepted,
		Heading:  session.Snake.Heading.String(),
	})
}

// Events handles GET /api/v1/sessions/{id}/events (SSE stream)
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := sessionID(r)

	// Any authenticated player may watch a session
	if _, err := h.controller.GetSession(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, player.ID)
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *SessionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	summaries, err := h.controller.Leaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(summaries))
}

// ownedSession loads a session and verifies the requester owns it
func (h *SessionHandler) ownedSession(r *http.Request, id model.SessionID) (*model.GameSession, error) {
	player := middleware.MustGetPlayer(r.Context())

	session, err := h.controller.GetSession(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != player.ID {
		return nil, model.ErrNotSessionOwner
	}
	return session, nil
}

// sessionID extracts the session ID path variable
func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}
