package runner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gridsnake/gridsnake/internal/dependencies/mocks"
	"github.com/gridsnake/gridsnake/internal/model"
	"github.com/gridsnake/gridsnake/internal/services/arena"
	"github.com/gridsnake/gridsnake/internal/services/game"
	"github.com/gridsnake/gridsnake/internal/services/spawner"
	"github.com/gridsnake/gridsnake/internal/storage/memory"
	"github.com/gridsnake/gridsnake/internal/testutil"
)

// recordingPublisher captures published frames for assertions
type recordingPublisher struct {
	mu        sync.Mutex
	frames    []*model.GameSession
	gameOvers []*model.GameSession
}

func (p *recordingPublisher) PublishFrame(session *model.GameSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, session)
}

func (p *recordingPublisher) PublishGameOver(session *model.GameSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameOvers = append(p.gameOvers, session)
}

func (p *recordingPublisher) frameCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

func (p *recordingPublisher) gameOverCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.gameOvers)
}

type ManagerSuite struct {
	suite.Suite
	ctx        context.Context
	controller *game.Controller
	publisher  *recordingPublisher
	manager    *Manager
	random     *mocks.MockRandom
}

func (s *ManagerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.ctx = context.Background()
	s.random = mocks.NewMockRandom()
	arenaService := arena.New(logger)
	spawnerService := spawner.New(arenaService, s.random, logger)

	// Fast ticks so the loop tests finish quickly. The exhausted mock draws
	// zeroes, which places a single food at (0,0), well off the snake's path.
	rules := game.DefaultRules()
	rules.StartSpeed = 100

	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.controller = game.NewController(memory.New(), arenaService, spawnerService, clk, s.random, rules, logger)
	s.publisher = &recordingPublisher{}
	s.manager = NewManager(s.controller, s.publisher, logger)
}

func (s *ManagerSuite) TearDownTest() {
	// Belt and braces: no loop should outlive its test.
	time.Sleep(20 * time.Millisecond)
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

// runningSession creates and starts a session of the given dimensions
func (s *ManagerSuite) runningSession(id string, width, height int) model.SessionID {
	s.random.QueueString(id)
	session, err := s.controller.CreateSession(s.ctx, "player-1", width, height)
	s.Require().NoError(err)
	_, err = s.controller.Start(s.ctx, session.ID)
	s.Require().NoError(err)
	return session.ID
}

func (s *ManagerSuite) TestLaunchAndHalt() {
	id := s.runningSession("LOOPSESSION1", 50, 50)

	s.False(s.manager.Running(id))

	s.manager.Launch(id)
	s.True(s.manager.Running(id))

	// Launching again is a no-op.
	s.manager.Launch(id)
	s.True(s.manager.Running(id))

	s.manager.Halt(id)
	s.False(s.manager.Running(id))

	// Halting a halted loop is a no-op too.
	s.manager.Halt(id)
	s.False(s.manager.Running(id))
}

func (s *ManagerSuite) TestLoopAdvancesSessionAndPublishesFrames() {
	id := s.runningSession("LOOPSESSION2", 50, 50)

	s.manager.Launch(id)
	defer s.manager.Halt(id)

	s.Eventually(func() bool {
		return s.publisher.frameCount() >= 3
	}, time.Second, 5*time.Millisecond)

	session, err := s.controller.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.GreaterOrEqual(session.Tick, uint64(3))
	s.Equal(model.ModeRunning, session.Mode)
}

func (s *ManagerSuite) TestLoopStandsDownWhenPaused() {
	id := s.runningSession("LOOPSESSION3", 50, 50)

	s.manager.Launch(id)
	s.Eventually(func() bool {
		return s.publisher.frameCount() >= 1
	}, time.Second, 5*time.Millisecond)

	_, err := s.controller.Pause(s.ctx, id)
	s.Require().NoError(err)

	// The next scheduled tick notices the pause and the loop exits on its
	// own, without a Halt.
	s.Eventually(func() bool {
		return !s.manager.Running(id)
	}, time.Second, 5*time.Millisecond)

	s.Equal(0, s.publisher.gameOverCount())
}

func (s *ManagerSuite) TestLoopPublishesGameOverOnCollision() {
	// Small grid: the snake spawns at the centre and hits the wall within
	// a handful of ticks.
	id := s.runningSession("LOOPSESSION4", 8, 8)

	s.manager.Launch(id)

	s.Eventually(func() bool {
		return s.publisher.gameOverCount() == 1
	}, time.Second, 5*time.Millisecond)

	s.Eventually(func() bool {
		return !s.manager.Running(id)
	}, time.Second, 5*time.Millisecond)

	session, err := s.controller.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.ModeGameOver, session.Mode)
}

func (s *ManagerSuite) TestHaltCancelsPendingTick() {
	id := s.runningSession("LOOPSESSION5", 50, 50)

	s.manager.Launch(id)
	s.manager.Halt(id)

	// Give any stray tick a chance to fire; none should.
	time.Sleep(50 * time.Millisecond)

	session, err := s.controller.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(uint64(0), session.Tick)
	s.Equal(0, s.publisher.frameCount())
}
