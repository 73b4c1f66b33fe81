package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gridsnake/gridsnake/internal/dependencies/mocks"
	"github.com/gridsnake/gridsnake/internal/model"
	"github.com/gridsnake/gridsnake/internal/services/arena"
	"github.com/gridsnake/gridsnake/internal/services/spawner"
	"github.com/gridsnake/gridsnake/internal/storage/memory"
	"github.com/gridsnake/gridsnake/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	ctx        context.Context
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	arena      *arena.Service
	controller *Controller
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.ctx = context.Background()
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.arena = arena.New(logger)
	spawnerService := spawner.New(s.arena, s.random, logger)
	s.controller = NewController(s.storage, s.arena, spawnerService, s.clock, s.random, DefaultRules(), logger)
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

// queueFood queues the draws for one food placement: position, score draw,
// then the weight and color draws.
func (s *ControllerSuite) queueFood(x, y, scoreDraw int) {
	s.random.QueueIntn(x, y, scoreDraw, 0, 0)
}

// queueInitGame queues the draws a fresh game consumes: the top-up target
// draw (0 selects two pieces) followed by two placements.
func (s *ControllerSuite) queueInitGame(x1, y1, sd1, x2, y2, sd2 int) {
	s.random.QueueIntn(0)
	s.queueFood(x1, y1, sd1)
	s.queueFood(x2, y2, sd2)
}

// newSession creates a welcome-mode session with food placed away from the
// snake's path.
func (s *ControllerSuite) newSession(width, height int) *model.GameSession {
	s.random.QueueString("TESTSESSION1")
	s.queueInitGame(1, 1, 0, 2, 2, 0)
	session, err := s.controller.CreateSession(s.ctx, "player-1", width, height)
	s.Require().NoError(err)
	return session
}

// startSession takes a welcome-mode session to running, which rebuilds the
// game and consumes another init draw sequence.
func (s *ControllerSuite) startSession(id model.SessionID, x1, y1, sd1, x2, y2, sd2 int) *model.GameSession {
	s.queueInitGame(x1, y1, sd1, x2, y2, sd2)
	session, err := s.controller.Start(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Equal(model.ModeRunning, session.Mode)
	return session
}

func (s *ControllerSuite) TestCreateSessionDefaults() {
	session := s.newSession(0, 0)

	s.Equal(model.SessionID("TESTSESSION1"), session.ID)
	s.Equal(model.PlayerID("player-1"), session.OwnerID)
	s.Equal(model.ModeWelcome, session.Mode)
	s.Equal(50, session.Grid.Width)
	s.Equal(50, session.Grid.Height)
	s.Equal(model.Position{X: 10, Y: 10}, session.Snake.Head())
	s.Equal(model.DirectionRight, session.Snake.Heading)
	s.Equal(1, session.Snake.Length())
	s.Equal(0, session.Score)
	s.InDelta(10.0, session.Speed, 1e-9)
	s.Equal(uint64(0), session.Tick)
	s.Equal(2, session.Grid.FoodCount())
	s.Equal(model.OccupantSnake, session.Grid.At(session.Snake.Head()).Kind)
}

func (s *ControllerSuite) TestCreateSessionInvalidDimensions() {
	for _, dims := range [][2]int{{7, 50}, {50, 7}, {257, 50}, {50, 257}} {
		_, err := s.controller.CreateSession(s.ctx, "player-1", dims[0], dims[1])
		s.ErrorIs(err, model.ErrInvalidDimensions, "dimensions %dx%d", dims[0], dims[1])
	}
}

func (s *ControllerSuite) TestCreateSessionSpawnFallsBackToCentre() {
	// An 8x8 grid excludes the default spawn cell, so the snake starts at
	// the grid centre instead.
	session := s.newSession(8, 8)
	s.Equal(model.Position{X: 4, Y: 4}, session.Snake.Head())
}

func (s *ControllerSuite) TestStartFromWelcomeRebuildsGame() {
	session := s.newSession(0, 0)

	started := s.startSession(session.ID, 1, 1, 0, 2, 2, 0)

	s.Equal(model.ModeRunning, started.Mode)
	s.Equal(uint64(0), started.Tick)
	s.Equal(0, started.Score)
	s.Equal(2, started.Grid.FoodCount())
}

func (s *ControllerSuite) TestStartWhileRunningIsNoOp() {
	session := s.newSession(0, 0)
	s.startSession(session.ID, 1, 1, 0, 2, 2, 0)

	// No draws queued: a second start must not rebuild anything.
	again, err := s.controller.Start(s.ctx, session.ID)
	s.NoError(err)
	s.Equal(model.ModeRunning, again.Mode)
}

func (s *ControllerSuite) TestStartFromPausedResumesWithoutReset() {
	session := s.newSession(0, 0)
	s.startSession(session.ID, 11, 10, 2, 1, 1, 0)

	// Eat the food at (11,10) so there is state a reset would wipe out.
	s.random.QueueIntn(0)
	s.queueFood(3, 3, 0)
	stepped, _, err := s.controller.Step(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Require().Equal(3, stepped.Score)

	_, err = s.controller.Pause(s.ctx, session.ID)
	s.Require().NoError(err)

	resumed, err := s.controller.Start(s.ctx, session.ID)
	s.NoError(err)
	s.Equal(model.ModeRunning, resumed.Mode)
	s.Equal(3, resumed.Score)
	s.Equal(uint64(1), resumed.Tick)
}

func (s *ControllerSuite) TestPauseOnlyAffectsRunningSessions() {
	session := s.newSession(0, 0)

	// Pausing a welcome session is a no-op.
	paused, err := s.controller.Pause(s.ctx, session.ID)
	s.NoError(err)
	s.Equal(model.ModeWelcome, paused.Mode)

	s.startSession(session.ID, 1, 1, 0, 2, 2, 0)
	paused, err = s.controller.Pause(s.ctx, session.ID)
	s.NoError(err)
	s.Equal(model.ModePaused, paused.Mode)
}

func (s *ControllerSuite) TestStepRejectsNonRunningSession() {
	session := s.newSession(0, 0)

	_, _, err := s.controller.Step(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotRunning)
}

func (s *ControllerSuite) TestStepPlainMove() {
	session := s.newSession(0, 0)
	s.startSession(session.ID, 1, 1, 0, 2, 2, 0)

	stepped, outcome, err := s.controller.Step(s.ctx, session.ID)

	s.NoError(err)
	s.Equal(model.OutcomeEmpty, outcome.Kind)
	s.Equal(model.Position{X: 11, Y: 10}, stepped.Snake.Head())
	s.Equal(1, stepped.Snake.Length())
	s.Equal(0, stepped.Snake.Result)
	s.Equal(uint64(1), stepped.Tick)

	// The vacated spawn cell is empty and the new head occupies the grid.
	s.True(stepped.Grid.At(model.Position{X: 10, Y: 10}).IsEmpty())
	s.Equal(model.OccupantSnake, stepped.Grid.At(model.Position{X: 11, Y: 10}).Kind)
}

func (s *ControllerSuite) TestStepEatsFoodAndGrows() {
	session := s.newSession(0, 0)
	s.startSession(session.ID, 11, 10, 2, 1, 1, 0)

	// The eat triggers a top-up: target two pieces, one placement needed.
	s.random.QueueIntn(0)
	s.queueFood(5, 5, 0)

	stepped, outcome, err := s.controller.Step(s.ctx, session.ID)

	s.NoError(err)
	s.Equal(model.OutcomeFood, outcome.Kind)
	s.Equal(3, outcome.Score)
	s.Equal(3, stepped.Score)
	s.Equal(2, stepped.Snake.Length())
	s.Equal(3, stepped.Snake.Result)
	s.Equal(2, stepped.Grid.FoodCount())

	// Score 3 is not a multiple of five, so the speed holds.
	s.InDelta(10.0, stepped.Speed, 1e-9)
}

func (s *ControllerSuite) TestSpeedScalesOnScoreMultiple() {
	session := s.newSession(0, 0)
	// Food worth five points directly in the snake's path.
	s.startSession(session.ID, 11, 10, 4, 1, 1, 0)

	s.random.QueueIntn(0)
	s.queueFood(5, 5, 0)

	stepped, _, err := s.controller.Step(s.ctx, session.ID)

	s.NoError(err)
	s.Equal(5, stepped.Score)
	s.InDelta(12.8, stepped.Speed, 1e-9)
}

func (s *ControllerSuite) TestStepWallCollisionEndsGame() {
	session := s.newSession(8, 8)
	s.startSession(session.ID, 1, 1, 0, 2, 2, 0)

	// From the centre spawn (4,4) heading right, three plain moves reach
	// the edge column and the fourth hits the wall.
	for i := 0; i < 3; i++ {
		_, outcome, err := s.controller.Step(s.ctx, session.ID)
		s.Require().NoError(err)
		s.Require().Equal(model.OutcomeEmpty, outcome.Kind)
	}

	stepped, outcome, err := s.controller.Step(s.ctx, session.ID)

	s.NoError(err)
	s.Equal(model.OutcomeWall, outcome.Kind)
	s.Equal(model.ModeGameOver, stepped.Mode)
	s.Equal(-1, stepped.Snake.Result)
	s.Equal(uint64(4), stepped.Tick)

	// The off-grid head never lands in the grid, but the body still moved:
	// the last in-bounds cell is vacated.
	s.True(stepped.Grid.At(model.Position{X: 7, Y: 4}).IsEmpty())

	summaries, err := s.controller.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(model.OutcomeWall, summaries[0].Cause)
	s.Equal(uint64(4), summaries[0].Ticks)
}

func (s *ControllerSuite) TestStepSelfCollisionEndsGame() {
	// Hand-build a coiled snake whose next move lands on its own body.
	grid := model.NewGrid(10, 10)
	snake := &model.Snake{
		Body: []model.Position{
			{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 4}, {X: 5, Y: 4}, {X: 6, Y: 4},
		},
		Heading: model.DirectionUp,
	}
	for _, pos := range snake.Body {
		s.arena.Apply(grid, []arena.CellChange{
			{Position: pos, Occupant: model.SnakeOccupant("#4caf50")},
		})
	}
	session := &model.GameSession{
		ID:      "COILED",
		OwnerID: "player-1",
		Mode:    model.ModeRunning,
		Grid:    grid,
		Snake:   snake,
		Speed:   10,
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	stepped, outcome, err := s.controller.Step(s.ctx, "COILED")

	s.NoError(err)
	s.Equal(model.OutcomeSelfCollision, outcome.Kind)
	s.Equal(model.ModeGameOver, stepped.Mode)
	s.Equal(-1, stepped.Snake.Result)
}

func (s *ControllerSuite) TestStopFromWelcomeSkipsSummary() {
	session := s.newSession(0, 0)

	stopped, err := s.controller.Stop(s.ctx, session.ID)

	s.NoError(err)
	s.Equal(model.ModeGameOver, stopped.Mode)

	summaries, err := s.controller.Leaderboard(s.ctx, 10)
	s.NoError(err)
	s.Empty(summaries)
}

func (s *ControllerSuite) TestStopWhileRunningRecordsSummary() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID:          "player-1",
		DisplayName: "Casey",
	}))

	session := s.newSession(0, 0)
	s.startSession(session.ID, 11, 10, 2, 1, 1, 0)

	s.random.QueueIntn(0)
	s.queueFood(5, 5, 0)
	_, _, err := s.controller.Step(s.ctx, session.ID)
	s.Require().NoError(err)

	stopped, err := s.controller.Stop(s.ctx, session.ID)
	s.NoError(err)
	s.Equal(model.ModeGameOver, stopped.Mode)

	summaries, err := s.controller.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal("Casey", summaries[0].DisplayName)
	s.Equal(3, summaries[0].Score)
	s.Equal(2, summaries[0].Length)
	s.Equal(model.OutcomeEmpty, summaries[0].Cause)
}

func (s *ControllerSuite) TestRestartAfterGameOver() {
	session := s.newSession(0, 0)
	s.startSession(session.ID, 1, 1, 0, 2, 2, 0)

	_, err := s.controller.Stop(s.ctx, session.ID)
	s.Require().NoError(err)

	restarted := s.startSession(session.ID, 1, 1, 0, 2, 2, 0)
	s.Equal(uint64(0), restarted.Tick)
	s.Equal(0, restarted.Score)
	s.Equal(1, restarted.Snake.Length())
}

func (s *ControllerSuite) TestChangeDirection() {
	session := s.newSession(0, 0)

	// Invalid codes are rejected outright.
	_, err := s.controller.ChangeDirection(s.ctx, session.ID, model.Direction(7))
	s.ErrorIs(err, model.ErrInvalidDirection)

	// Same-axis requests are ignored without error.
	changed, err := s.controller.ChangeDirection(s.ctx, session.ID, model.DirectionLeft)
	s.NoError(err)
	s.False(changed)

	changed, err = s.controller.ChangeDirection(s.ctx, session.ID, model.DirectionDown)
	s.NoError(err)
	s.True(changed)

	reloaded, err := s.controller.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.DirectionDown, reloaded.Snake.Heading)
}

func (s *ControllerSuite) TestDeleteSession() {
	session := s.newSession(0, 0)

	s.NoError(s.controller.DeleteSession(s.ctx, session.ID))

	_, err := s.controller.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestTickIntervalTracksSpeed() {
	session := s.newSession(0, 0)
	s.Equal(100*time.Millisecond, session.TickInterval())

	session.Speed = 12.8
	s.Equal(time.Duration(float64(time.Second)/12.8), session.TickInterval())
}
