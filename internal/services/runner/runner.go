package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gridsnake/gridsnake/internal/model"
	"github.com/gridsnake/gridsnake/internal/services/game"
)

// FramePublisher pushes simulation state to rendering clients once a tick
// has settled
type FramePublisher interface {
	PublishFrame(session *model.GameSession)
	PublishGameOver(session *model.GameSession)
}

// Manager schedules the tick loop for running sessions: one goroutine per
// session owns a timer armed at the session's current tick interval
// (1000/speed ms), re-armed after every tick so speed changes take effect on
// the very next one. Halting a loop cancels the pending timer, so no stray
// late tick ever executes against a paused or reset session.
type Manager struct {
	controller *game.Controller
	publisher  FramePublisher
	logger     *slog.Logger

	mu    sync.Mutex
	loops map[model.SessionID]chan struct{}
}

// NewManager creates a new tick-loop manager
func NewManager(controller *game.Controller, publisher FramePublisher, logger *slog.Logger) *Manager {
	return &Manager{
		controller: controller,
		publisher:  publisher,
		logger:     logger.With(slog.String("component", "runner")),
		loops:      make(map[model.SessionID]chan struct{}),
	}
}

// Launch starts the tick loop for a session. Launching an already-running
// loop is a no-op.
func (m *Manager) Launch(id model.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.loops[id]; ok {
		return
	}
	stop := make(chan struct{})
	m.loops[id] = stop
	go m.run(id, stop)

	m.logger.Info("tick loop launched", slog.String("session_id", string(id)))
}

// Halt cancels a session's tick loop, including any pending scheduled tick.
// Halting a session with no loop is a no-op.
func (m *Manager) Halt(id model.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if stop, ok := m.loops[id]; ok {
		close(stop)
		delete(m.loops, id)
		m.logger.Info("tick loop halted", slog.String("session_id", string(id)))
	}
}

// Running reports whether a session currently has a tick loop
func (m *Manager) Running(id model.SessionID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.loops[id]
	return ok
}

// remove clears loop bookkeeping when a loop exits on its own
func (m *Manager) remove(id model.SessionID, stop chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, ok := m.loops[id]; ok && current == stop {
		delete(m.loops, id)
	}
}

// run is the per-session tick loop. One tick executes to completion before
// the next is scheduled; the only suspension point is the timer wait.
func (m *Manager) run(id model.SessionID, stop chan struct{}) {
	ctx := context.Background()
	defer m.remove(id, stop)

	session, err := m.controller.GetSession(ctx, id)
	if err != nil {
		m.logger.Error("tick loop could not load session",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return
	}

	timer := time.NewTimer(session.TickInterval())
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return

		case <-timer.C:
			session, _, err := m.controller.Step(ctx, id)
			if err != nil {
				if !errors.Is(err, model.ErrSessionNotRunning) {
					m.logger.Error("tick failed",
						slog.String("session_id", string(id)),
						slog.String("error", err.Error()),
					)
				}
				// Paused, stopped or gone between ticks: stand down.
				return
			}

			m.publisher.PublishFrame(session)

			if session.Mode != model.ModeRunning {
				m.publisher.PublishGameOver(session)
				return
			}

			// Interval recomputed every tick: speed changes apply to the
			// very next scheduled tick.
			timer.Reset(session.TickInterval())
		}
	}
}
