package pb

import "strings"

// Direction is the heading of a snake.
type Direction string

// Directions a snake can travel in.
const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Directions lists every direction in a stable order.
var Directions = []Direction{DirectionDown, DirectionUp, DirectionRight, DirectionLeft}

// Opposite returns the reverse direction, or "" for an unknown direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return ""
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d.Opposite() != ""
}

// ParseDirection accepts any casing of up/down/left/right.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}
