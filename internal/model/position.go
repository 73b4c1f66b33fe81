package model

// Position identifies a cell on the grid
type Position struct {
	X int // 0-indexed from the left
	Y int // 0-indexed from the top
}

// Step returns the position one cell away in the given direction.
// The result may lie outside any grid; bounds are the grid's concern.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}
