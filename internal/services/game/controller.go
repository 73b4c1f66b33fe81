package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gridsnake/gridsnake/internal/dependencies/clock"
	"github.com/gridsnake/gridsnake/internal/dependencies/random"
	"github.com/gridsnake/gridsnake/internal/model"
	"github.com/gridsnake/gridsnake/internal/services/arena"
	"github.com/gridsnake/gridsnake/internal/services/spawner"
	"github.com/gridsnake/gridsnake/internal/storage"
)

// Rules holds the compile-time simulation constants consumed at session
// construction
type Rules struct {
	Width  int
	Height int

	// Spawn is the snake's starting cell; sessions with custom dimensions
	// that exclude it fall back to the grid centre
	Spawn   model.Position
	Heading model.Direction

	StartSpeed float64 // ticks per second at game start

	// Speed increases by (food score × SpeedStep) whenever the cumulative
	// score lands on a multiple of SpeedScoreEvery
	SpeedStep       float64
	SpeedScoreEvery int

	SnakeColor string
}

// DefaultRules returns the standard simulation constants
func DefaultRules() Rules {
	return Rules{
		Width:           50,
		Height:          50,
		Spawn:           model.Position{X: 10, Y: 10},
		Heading:         model.DirectionRight,
		StartSpeed:      10,
		SpeedStep:       0.56,
		SpeedScoreEvery: 5,
		SnakeColor:      "#4caf50",
	}
}

// Dimension limits for custom sessions
const (
	minGridSize = 8
	maxGridSize = 256
)

// Controller owns the game-session state machine: it creates sessions,
// enforces legal mode transitions, and advances the simulation one tick at
// a time. Ticks and input events for a session are serialised through a
// per-session lock, so a tick always runs to completion before the next
// mutation is observed.
type Controller struct {
	storage storage.Storage
	arena   *arena.Service
	spawner *spawner.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	rules   Rules

	mu    sync.Mutex
	locks map[model.SessionID]*sync.Mutex
}

// NewController creates a new game controller
func NewController(
	storage storage.Storage,
	arenaService *arena.Service,
	spawnerService *spawner.Service,
	clock clock.Clock,
	random random.Random,
	rules Rules,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		arena:   arenaService,
		spawner: spawnerService,
		clock:   clock,
		random:  random,
		rules:   rules,
		logger:  logger,
		locks:   make(map[model.SessionID]*sync.Mutex),
	}
}

// Rules returns the controller's simulation constants
func (c *Controller) Rules() Rules {
	return c.rules
}

// sessionLock returns the serialisation lock for a session
func (c *Controller) sessionLock(id model.SessionID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[id] = lock
	}
	return lock
}

// dropLock discards a deleted session's lock
func (c *Controller) dropLock(id model.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.locks, id)
}

// CreateSession creates a new session in welcome mode. Zero width/height
// select the default dimensions.
func (c *Controller) CreateSession(ctx context.Context, ownerID model.PlayerID, width, height int) (*model.GameSession, error) {
	if width == 0 {
		width = c.rules.Width
	}
	if height == 0 {
		height = c.rules.Height
	}
	if width < minGridSize || width > maxGridSize || height < minGridSize || height > maxGridSize {
		return nil, model.ErrInvalidDimensions
	}

	now := c.clock.Now()
	session := &model.GameSession{
		ID:        model.SessionID(c.random.String(12, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")),
		OwnerID:   ownerID,
		Mode:      model.ModeWelcome,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.initGame(session, width, height)

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("owner", string(ownerID)),
		slog.Int("width", width),
		slog.Int("height", height),
	)
	return session, nil
}

// GetSession retrieves a session by ID
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	return c.storage.GetSession(ctx, id)
}

// DeleteSession removes a session entirely
func (c *Controller) DeleteSession(ctx context.Context, id model.SessionID) error {
	lock := c.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := c.storage.DeleteSession(ctx, id); err != nil {
		return err
	}
	c.dropLock(id)
	return nil
}

// initGame rebuilds the session's grid, snake and stats from scratch.
// The previous grid and snake, if any, are discarded wholesale.
func (c *Controller) initGame(session *model.GameSession, width, height int) {
	spawn := c.rules.Spawn
	grid := model.NewGrid(width, height)
	if !grid.InBounds(spawn) {
		spawn = model.Position{X: width / 2, Y: height / 2}
	}

	session.Grid = grid
	session.Snake = model.NewSnake(spawn, c.rules.Heading)
	session.Score = 0
	session.Speed = c.rules.StartSpeed
	session.Tick = 0

	c.arena.Apply(grid, []arena.CellChange{
		{Position: spawn, Occupant: model.SnakeOccupant(c.rules.SnakeColor)},
	})
	c.spawner.TopUp(grid)
}

// Start drives the start transition: from welcome or game-over the session
// is reinitialised and set running; from paused it resumes without a reset;
// while already running it is a no-op. The returned session reflects the
// post-transition state.
func (c *Controller) Start(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	lock := c.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	switch session.Mode {
	case model.ModeWelcome, model.ModeGameOver:
		c.initGame(session, session.Grid.Width, session.Grid.Height)
		session.Mode = model.ModeRunning
		c.logger.Info("game started",
			slog.String("session_id", string(id)),
			slog.Float64("speed", session.Speed),
		)
	case model.ModePaused:
		session.Mode = model.ModeRunning
		c.logger.Info("game resumed", slog.String("session_id", string(id)))
	case model.ModeRunning:
		return session, nil
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Pause suspends a running game; in any other mode it is a no-op
func (c *Controller) Pause(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	lock := c.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Mode != model.ModeRunning {
		return session, nil
	}

	session.Mode = model.ModePaused
	session.UpdatedAt = c.clock.Now()
	c.logger.Info("game paused", slog.String("session_id", string(id)))

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Stop ends the game: welcome or running transitions to game-over, other
// modes are no-ops. Stopping a running game records a leaderboard summary.
func (c *Controller) Stop(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	lock := c.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Mode != model.ModeWelcome && session.Mode != model.ModeRunning {
		return session, nil
	}

	wasRunning := session.Mode == model.ModeRunning
	session.Mode = model.ModeGameOver
	session.UpdatedAt = c.clock.Now()

	if wasRunning {
		c.recordSummary(ctx, session, model.OutcomeEmpty)
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ChangeDirection applies a heading-change request to the session's snake.
// Same-axis requests (including the 180° reversal) are silently ignored.
// The returned bool reports whether the heading actually changed.
func (c *Controller) ChangeDirection(ctx context.Context, id model.SessionID, d model.Direction) (bool, error) {
	if !d.Valid() {
		return false, model.ErrInvalidDirection
	}

	lock := c.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return false, err
	}

	changed := session.Snake.SetHeading(d)
	if !changed {
		return false, nil
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return false, err
	}
	return true, nil
}

// Step advances a running session by exactly one tick and returns the
// session and the tick's outcome. Sessions that are not running return
// model.ErrSessionNotRunning, which lets a late-firing scheduler notice it
// should stand down without touching the session.
func (c *Controller) Step(ctx context.Context, id model.SessionID) (*model.GameSession, model.Outcome, error) {
	lock := c.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, model.Outcome{}, err
	}
	if session.Mode != model.ModeRunning {
		return session, model.Outcome{}, model.ErrSessionNotRunning
	}

	outcome := c.advance(session)

	if outcome.IsCollision() {
		session.Mode = model.ModeGameOver
		c.logger.Info("game over",
			slog.String("session_id", string(id)),
			slog.String("cause", string(outcome.Kind)),
			slog.Int("score", session.Score),
			slog.Uint64("ticks", session.Tick),
		)
		c.recordSummary(ctx, session, outcome.Kind)
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, model.Outcome{}, err
	}
	return session, outcome, nil
}

// advance runs one simulation step: classify the candidate head against the
// pre-move grid, then commit. The classify-then-commit ordering is load
// bearing: committing first would put the snake's new head in the grid and
// every move would look like a self-collision.
func (c *Controller) advance(session *model.GameSession) model.Outcome {
	snake := session.Snake
	grid := session.Grid

	candidate := snake.NextHead()

	// The tail cell vacates on any non-growth move. A food cell can never
	// be the snake's own tail, so excluding it from self-collision checks
	// is safe even before the growth decision is made.
	tail := snake.Tail()
	outcome := c.arena.Classify(grid, candidate, &tail)
	snake.Result = outcome.ResultCode()

	switch {
	case outcome.IsCollision():
		// The fatal move is still committed visually: the head joins the
		// body and the tail vacates. An off-grid head cell is dropped by
		// the resolver.
		head, vacated := snake.Advance(false)
		c.commitMove(grid, head, vacated)

	case outcome.Kind == model.OutcomeFood:
		head, _ := snake.Advance(true)
		c.commitMove(grid, head, nil)

		session.Score += outcome.Score
		if session.Score%c.rules.SpeedScoreEvery == 0 {
			session.Speed += float64(outcome.Score) * c.rules.SpeedStep
		}
		c.spawner.TopUp(grid)

	default:
		head, vacated := snake.Advance(false)
		c.commitMove(grid, head, vacated)
	}

	session.Tick++
	return outcome
}

// commitMove applies the tick's occupancy changes: the vacated tail is
// cleared before the head is written, so a head landing on the vacated cell
// resolves correctly.
func (c *Controller) commitMove(grid *model.Grid, head model.Position, vacated *model.Position) {
	changes := make([]arena.CellChange, 0, 2)
	if vacated != nil {
		changes = append(changes, arena.CellChange{Position: *vacated})
	}
	changes = append(changes, arena.CellChange{
		Position: head,
		Occupant: model.SnakeOccupant(c.rules.SnakeColor),
	})
	c.arena.Apply(grid, changes)
}

// recordSummary writes the finished game to the leaderboard
func (c *Controller) recordSummary(ctx context.Context, session *model.GameSession, cause model.OutcomeKind) {
	displayName := ""
	if player, err := c.storage.GetPlayer(ctx, session.OwnerID); err == nil {
		displayName = player.DisplayName
	}

	summary := &model.GameSummary{
		SessionID:   session.ID,
		PlayerID:    session.OwnerID,
		DisplayName: displayName,
		Score:       session.Score,
		Length:      session.Snake.Length(),
		Ticks:       session.Tick,
		Cause:       cause,
		EndedAt:     c.clock.Now(),
	}

	if err := c.storage.SaveSummary(ctx, summary); err != nil {
		c.logger.Error("failed to save game summary",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// Leaderboard returns the top game summaries, best score first
func (c *Controller) Leaderboard(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	return c.storage.TopSummaries(ctx, limit)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context, ownerID model.PlayerID, width, height int) (*model.GameSession, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	Start(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	Pause(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	Stop(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	ChangeDirection(ctx context.Context, id model.SessionID, d model.Direction) (bool, error)
	Step(ctx context.Context, id model.SessionID) (*model.GameSession, model.Outcome, error)
	Leaderboard(ctx context.Context, limit int) ([]*model.GameSummary, error)
}

var _ ControllerInterface = (*Controller)(nil)
