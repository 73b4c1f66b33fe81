package model

// OutcomeKind classifies a candidate head move against the grid
type OutcomeKind string

const (
	OutcomeEmpty         OutcomeKind = "empty"
	OutcomeWall          OutcomeKind = "wall"
	OutcomeSelfCollision OutcomeKind = "self_collision"
	OutcomeFood          OutcomeKind = "food"
)

// Outcome is the result of classifying a candidate head move.
// Score is only set for food outcomes.
type Outcome struct {
	Kind  OutcomeKind
	Score int
}

// IsCollision reports whether the outcome terminates the game
func (o Outcome) IsCollision() bool {
	return o.Kind == OutcomeWall || o.Kind == OutcomeSelfCollision
}

// ResultCode returns the snake's per-tick result encoding:
// -1 collided, 0 empty move, >0 the food score consumed.
func (o Outcome) ResultCode() int {
	switch o.Kind {
	case OutcomeWall, OutcomeSelfCollision:
		return -1
	case OutcomeFood:
		return o.Score
	}
	return 0
}
