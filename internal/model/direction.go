package model

import "errors"

// Direction is a compass heading. The two directions of an axis share a
// magnitude (vertical 1, horizontal 2), so a 180° reversal is exactly the
// value with equal magnitude and opposite sign.
type Direction int

const (
	DirectionUp    Direction = -1
	DirectionDown  Direction = 1
	DirectionLeft  Direction = -2
	DirectionRight Direction = 2
)

// ErrInvalidDirection indicates an unrecognised direction value or name
var ErrInvalidDirection = errors.New("invalid direction")

// Delta returns the unit step for the direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	}
	return 0, 0
}

// Magnitude returns the axis identity of the direction (1 vertical, 2 horizontal)
func (d Direction) Magnitude() int {
	if d < 0 {
		return int(-d)
	}
	return int(d)
}

// SameAxis reports whether both directions lie on the same movement axis
func (d Direction) SameAxis(other Direction) bool {
	return d.Magnitude() == other.Magnitude()
}

// Valid reports whether d is one of the four compass headings
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// String returns the lowercase name of the direction
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return "unknown"
}

// ParseDirection converts a lowercase direction name to a Direction
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirectionUp, nil
	case "down":
		return DirectionDown, nil
	case "left":
		return DirectionLeft, nil
	case "right":
		return DirectionRight, nil
	}
	return 0, ErrInvalidDirection
}
