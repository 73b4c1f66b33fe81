package model

// Snake is the ordered sequence of body positions (head first), the current
// heading, and the transient result of the last tick.
type Snake struct {
	Body    []Position // head = index 0
	Heading Direction
	// Result is the last tick's outcome code:
	// -1 collided, 0 plain move, >0 the food score consumed
	Result int
}

// NewSnake creates a single-segment snake at the spawn position
func NewSnake(spawn Position, heading Direction) *Snake {
	return &Snake{
		Body:    []Position{spawn},
		Heading: heading,
	}
}

// Head returns the current head position
func (s *Snake) Head() Position {
	return s.Body[0]
}

// Tail returns the current last body segment
func (s *Snake) Tail() Position {
	return s.Body[len(s.Body)-1]
}

// Length returns the number of body segments
func (s *Snake) Length() int {
	return len(s.Body)
}

// NextHead computes the candidate head position for the next tick without
// mutating the snake. No bounds clamping: the result may be off-grid, and
// classifying it is the resolver's job.
func (s *Snake) NextHead() Position {
	return s.Head().Step(s.Heading)
}

// SetHeading applies a direction change request. A change is accepted only
// when the new heading lies on the other axis; a same-axis request (which
// includes the 180° reversal) is silently ignored. Multiple perpendicular
// changes may land between ticks; the last one wins.
func (s *Snake) SetHeading(d Direction) bool {
	if !d.Valid() || d.SameAxis(s.Heading) {
		return false
	}
	s.Heading = d
	return true
}

// Advance moves the snake one cell along its heading: the candidate head is
// prepended and, unless growing, the tail segment is removed. It returns the
// new head and the vacated tail position (nil when growing).
func (s *Snake) Advance(grow bool) (head Position, vacated *Position) {
	head = s.NextHead()
	s.Body = append([]Position{head}, s.Body...)
	if grow {
		return head, nil
	}
	tail := s.Body[len(s.Body)-1]
	s.Body = s.Body[:len(s.Body)-1]
	return head, &tail
}

// Occupies reports whether any body segment sits at the given position
func (s *Snake) Occupies(pos Position) bool {
	for _, p := range s.Body {
		if p == pos {
			return true
		}
	}
	return false
}
