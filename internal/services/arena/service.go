package arena

import (
	"log/slog"

	"github.com/gridsnake/gridsnake/internal/model"
)

// CellChange is one entry in an occupancy-change batch: the position takes
// the given occupant, with the empty occupant meaning the cell is cleared.
type CellChange struct {
	Position model.Position
	Occupant model.Occupant
}

// Service is the collision resolver: it classifies candidate head moves
// against a grid and applies batches of occupancy changes while keeping the
// grid's occupied-position list consistent with its cell matrix.
type Service struct {
	logger *slog.Logger
}

// New creates a new arena resolver
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "arena")),
	}
}

// Classify determines the outcome of moving the snake's head to pos.
// It must be called against the grid as it stands before the move is
// committed; classifying after commit would always see the snake's own new
// head and misreport a self-collision.
//
// vacating, when non-nil, names the tail cell the snake frees this tick:
// moving into it is a plain move, not a self-collision.
func (s *Service) Classify(grid *model.Grid, pos model.Position, vacating *model.Position) model.Outcome {
	if !grid.InBounds(pos) {
		return model.Outcome{Kind: model.OutcomeWall}
	}
	if vacating != nil && pos == *vacating {
		return model.Outcome{Kind: model.OutcomeEmpty}
	}
	occ := grid.At(pos)
	switch occ.Kind {
	case model.OccupantSnake:
		return model.Outcome{Kind: model.OutcomeSelfCollision}
	case model.OccupantFood:
		return model.Outcome{Kind: model.OutcomeFood, Score: occ.Score}
	}
	return model.Outcome{Kind: model.OutcomeEmpty}
}

// Apply commits a batch of occupancy changes in order. Out-of-bounds
// positions are dropped silently; that is how a wall-collision head cell,
// which is never committed, stays off the grid. For each in-bounds change
// the cell is set and the occupied list is resynchronised: any stale entry
// for the position is removed, and non-empty occupants are pushed to the
// front so renderers see the most recently changed cells first.
func (s *Service) Apply(grid *model.Grid, changes []CellChange) {
	for _, ch := range changes {
		if !grid.InBounds(ch.Position) {
			s.logger.Debug("dropping out-of-bounds occupancy change",
				slog.Int("x", ch.Position.X),
				slog.Int("y", ch.Position.Y),
			)
			continue
		}

		grid.Cells[ch.Position.Y][ch.Position.X] = ch.Occupant

		removeOccupied(grid, ch.Position)
		if !ch.Occupant.IsEmpty() {
			grid.Occupied = append([]model.Position{ch.Position}, grid.Occupied...)
		}
	}
}

// removeOccupied deletes pos from the occupied list, preserving order
func removeOccupied(grid *model.Grid, pos model.Position) {
	for i, p := range grid.Occupied {
		if p == pos {
			grid.Occupied = append(grid.Occupied[:i], grid.Occupied[i+1:]...)
			return
		}
	}
}
