package spawner

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gridsnake/gridsnake/internal/dependencies/mocks"
	"github.com/gridsnake/gridsnake/internal/model"
	"github.com/gridsnake/gridsnake/internal/services/arena"
	"github.com/gridsnake/gridsnake/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	arena   *arena.Service
	random  *mocks.MockRandom
	grid    *model.Grid
}

func (s *ServiceSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.arena = arena.New(logger)
	s.random = mocks.NewMockRandom()
	s.service = New(s.arena, s.random, logger)
	s.grid = model.NewGrid(10, 10)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestPlaceOneOnEmptyCell() {
	// Draws: x, y, score, weight, color index.
	s.random.QueueIntn(3, 4, 2, 1, 0)

	pos, ok := s.service.PlaceOne(s.grid)

	s.True(ok)
	s.Equal(model.Position{X: 3, Y: 4}, pos)

	occ := s.grid.At(pos)
	s.Equal(model.OccupantFood, occ.Kind)
	s.Equal(3, occ.Score)
	s.Equal(2, occ.Weight)
	s.Equal("#e91e63", occ.Color)

	s.Require().Len(s.grid.Occupied, 1)
	s.Equal(pos, s.grid.Occupied[0])
}

func (s *ServiceSuite) TestPlaceOneRetriesOccupiedCells() {
	s.arena.Apply(s.grid, []arena.CellChange{
		{Position: model.Position{X: 3, Y: 4}, Occupant: model.SnakeOccupant("#4caf50")},
	})

	// First sample hits the snake and costs only the x,y draws; the second
	// lands on an empty cell and draws the food attributes.
	s.random.QueueIntn(3, 4)
	s.random.QueueIntn(5, 5, 0, 0, 1)

	pos, ok := s.service.PlaceOne(s.grid)

	s.True(ok)
	s.Equal(model.Position{X: 5, Y: 5}, pos)

	occ := s.grid.At(pos)
	s.Equal(1, occ.Score)
	s.Equal(1, occ.Weight)
	s.Equal("#ff9800", occ.Color)
}

func (s *ServiceSuite) TestPlaceOneFailsClosedOnSaturatedGrid() {
	grid := model.NewGrid(1, 1)
	s.arena.Apply(grid, []arena.CellChange{
		{Position: model.Position{X: 0, Y: 0}, Occupant: model.SnakeOccupant("#4caf50")},
	})

	// The exhausted mock returns 0 for every draw, so every attempt samples
	// the one occupied cell until the retry budget runs out.
	_, ok := s.service.PlaceOne(grid)

	s.False(ok)
	s.Equal(0, grid.FoodCount())
}

func (s *ServiceSuite) TestTopUpPlacesToTarget() {
	// Target draw 1 means three pieces total.
	s.random.QueueIntn(1)
	s.random.QueueIntn(1, 1, 0, 0, 0)
	s.random.QueueIntn(2, 2, 1, 1, 1)
	s.random.QueueIntn(3, 3, 4, 2, 2)

	placed := s.service.TopUp(s.grid)

	s.Equal(3, placed)
	s.Equal(3, s.grid.FoodCount())
	s.Equal(5, s.grid.At(model.Position{X: 3, Y: 3}).Score)
}

func (s *ServiceSuite) TestTopUpNoOpWhenAlreadyAtTarget() {
	s.arena.Apply(s.grid, []arena.CellChange{
		{Position: model.Position{X: 1, Y: 1}, Occupant: model.FoodOccupant(1, 1, "#e91e63")},
		{Position: model.Position{X: 2, Y: 2}, Occupant: model.FoodOccupant(2, 1, "#ff9800")},
	})

	// Target draw 0 means two pieces, which the grid already holds.
	s.random.QueueIntn(0)

	placed := s.service.TopUp(s.grid)

	s.Equal(0, placed)
	s.Equal(2, s.grid.FoodCount())
}

func (s *ServiceSuite) TestTopUpStopsWhenPlacementFails() {
	grid := model.NewGrid(1, 1)
	s.arena.Apply(grid, []arena.CellChange{
		{Position: model.Position{X: 0, Y: 0}, Occupant: model.FoodOccupant(1, 1, "#e91e63")},
	})

	// Target draw 0 means two pieces, but the grid has no empty cell left;
	// the top-up gives up rather than looping forever.
	s.random.QueueIntn(0)

	placed := s.service.TopUp(grid)

	s.Equal(0, placed)
	s.Equal(1, grid.FoodCount())
}
