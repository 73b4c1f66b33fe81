package model

// OccupantKind tags what currently occupies a grid cell
type OccupantKind string

const (
	OccupantEmpty OccupantKind = ""
	OccupantSnake OccupantKind = "snake"
	OccupantFood  OccupantKind = "food"
)

// Occupant is the tagged variant held by each grid cell. Score and Weight
// are only meaningful for food; Color is a display hint for renderers and
// plays no part in the simulation.
type Occupant struct {
	Kind   OccupantKind
	Score  int    // points awarded when a food cell is consumed
	Weight int    // display size hint for food
	Color  string // display color hint
}

// IsEmpty reports whether the cell holds nothing
func (o Occupant) IsEmpty() bool {
	return o.Kind == OccupantEmpty
}

// SnakeOccupant returns the occupant marking a snake body segment
func SnakeOccupant(color string) Occupant {
	return Occupant{Kind: OccupantSnake, Color: color}
}

// FoodOccupant returns the occupant marking a food cell
func FoodOccupant(score, weight int, color string) Occupant {
	return Occupant{Kind: OccupantFood, Score: score, Weight: weight, Color: color}
}
