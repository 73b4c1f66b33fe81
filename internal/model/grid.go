package model

// Grid is a fixed-size cell matrix plus an ordered list of the currently
// occupied positions. The list is kept consistent with the matrix at all
// times: a position appears in it exactly once iff its cell is non-empty,
// with the most recently changed positions at the front. All mutation goes
// through the arena resolver so the invariant cannot drift.
type Grid struct {
	Width  int
	Height int
	Cells  [][]Occupant // row-major: Cells[y][x]
	// Occupied lists every non-empty position, most recently changed first
	Occupied []Position
}

// NewGrid creates an empty grid of the given dimensions
func NewGrid(width, height int) *Grid {
	cells := make([][]Occupant, height)
	for y := range cells {
		cells[y] = make([]Occupant, width)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

// InBounds reports whether the position lies inside the grid
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.Width && pos.Y >= 0 && pos.Y < g.Height
}

// At returns the occupant at the given position, or the empty occupant if
// the position is out of bounds
func (g *Grid) At(pos Position) Occupant {
	if !g.InBounds(pos) {
		return Occupant{}
	}
	return g.Cells[pos.Y][pos.X]
}

// IsEmptyCell reports whether an in-bounds position holds nothing
func (g *Grid) IsEmptyCell(pos Position) bool {
	return g.InBounds(pos) && g.Cells[pos.Y][pos.X].IsEmpty()
}

// CellCount returns the total number of cells
func (g *Grid) CellCount() int {
	return g.Width * g.Height
}

// OccupiedCount returns the number of non-empty cells
func (g *Grid) OccupiedCount() int {
	return len(g.Occupied)
}

// FoodCount returns the number of cells currently holding food
func (g *Grid) FoodCount() int {
	count := 0
	for _, pos := range g.Occupied {
		if g.At(pos).Kind == OccupantFood {
			count++
		}
	}
	return count
}
