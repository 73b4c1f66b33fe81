package spawner

import (
	"log/slog"

	"github.com/gridsnake/gridsnake/internal/dependencies/random"
	"github.com/gridsnake/gridsnake/internal/model"
	"github.com/gridsnake/gridsnake/internal/services/arena"
)

const (
	// maxPlacementAttempts bounds the rejection-sampling loop. On a grid
	// saturated enough for this to trip, the tick simply goes without a
	// spawn rather than stalling the simulation.
	maxPlacementAttempts = 128

	minFoodScore = 1
	maxFoodScore = 5

	maxFoodWeight = 3
)

// foodColors is the display palette food is tagged with at spawn time
var foodColors = []string{"#e91e63", "#ff9800", "#8bc34a", "#00bcd4"}

// Service places food on the grid: single placements by rejection sampling
// of empty cells, and top-ups to a randomised target count after the snake
// eats.
type Service struct {
	arena  *arena.Service
	random random.Random
	logger *slog.Logger
}

// New creates a new food spawner
func New(arenaService *arena.Service, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		arena:  arenaService,
		random: rnd,
		logger: logger.With(slog.String("component", "spawner")),
	}
}

// PlaceOne samples uniformly random in-bounds positions until it finds an
// empty cell, then commits a food occupant there with a score drawn from
// [minFoodScore, maxFoodScore]. Sampling is bounded: if no empty cell turns
// up within maxPlacementAttempts the spawn is skipped for this tick and
// PlaceOne reports failure.
//
// Draw order per attempt is x, then y; a successful attempt then draws
// score, weight and color.
func (s *Service) PlaceOne(grid *model.Grid) (model.Position, bool) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		pos := model.Position{
			X: s.random.Intn(grid.Width),
			Y: s.random.Intn(grid.Height),
		}
		if !grid.IsEmptyCell(pos) {
			continue
		}

		score := minFoodScore + s.random.Intn(maxFoodScore-minFoodScore+1)
		weight := 1 + s.random.Intn(maxFoodWeight)
		color := foodColors[s.random.Intn(len(foodColors))]

		s.arena.Apply(grid, []arena.CellChange{
			{Position: pos, Occupant: model.FoodOccupant(score, weight, color)},
		})
		return pos, true
	}

	s.logger.Warn("no empty cell found for food, skipping spawn",
		slog.Int("attempts", maxPlacementAttempts),
		slog.Int("occupied", grid.OccupiedCount()),
	)
	return model.Position{}, false
}

// TopUp places food until the grid holds a randomised target count: one
// guaranteed piece plus one or two more. It returns the number of pieces
// placed. Called once per tick after the snake eats.
func (s *Service) TopUp(grid *model.Grid) int {
	target := 1 + 1 + s.random.Intn(2)

	placed := 0
	for grid.FoodCount() < target {
		if _, ok := s.PlaceOne(grid); !ok {
			break
		}
		placed++
	}
	return placed
}
