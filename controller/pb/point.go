package pb

import "fmt"

// Point is a cell on the board. Coordinates are in board units, so a placed
// point is always a multiple of the cell size.
type Point struct {
	X int32 `json:"X"`
	Y int32 `json:"Y"`
}

// Equal checks if 2 points are the same x,y coordinate. A nil point is only
// equal to another nil point.
func (p *Point) Equal(other *Point) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.X == other.X && p.Y == other.Y
}

// Clone returns a copy of the point.
func (p *Point) Clone() *Point {
	if p == nil {
		return nil
	}
	return &Point{X: p.X, Y: p.Y}
}

// Shift returns a new point moved step units in the given direction.
func (p *Point) Shift(d Direction, step int32) *Point {
	switch d {
	case DirectionUp:
		return &Point{X: p.X, Y: p.Y - step}
	case DirectionDown:
		return &Point{X: p.X, Y: p.Y + step}
	case DirectionLeft:
		return &Point{X: p.X - step, Y: p.Y}
	case DirectionRight:
		return &Point{X: p.X + step, Y: p.Y}
	}
	return p.Clone()
}

func (p *Point) String() string {
	if p == nil {
		return "(nil)"
	}
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
