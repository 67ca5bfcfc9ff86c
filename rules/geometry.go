package rules

import (
	"errors"

	"github.com/snakefield/engine/controller/pb"
)

// Margin is the inset, in cells, kept clear of placed entities on every side.
// Collision detection still uses the full board.
const Margin = 2

// ErrInvalidGeometry is returned when the board leaves no playable area.
var ErrInvalidGeometry = errors.New("rules: invalid board geometry")

// Rect is the playable area of a board: [MinX, MaxX) x [MinY, MaxY), stepped
// by Cell.
type Rect struct {
	MinX, MinY int32
	MaxX, MaxY int32
	Cell       int32
}

// Playable returns the board rectangle eroded by the margin.
func Playable(board pb.Board) (Rect, error) {
	if board.CellSize <= 0 {
		return Rect{}, ErrInvalidGeometry
	}
	inset := Margin * board.CellSize
	r := Rect{
		MinX: inset,
		MinY: inset,
		MaxX: board.Width - inset,
		MaxY: board.Height - inset,
		Cell: board.CellSize,
	}
	if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
		return Rect{}, ErrInvalidGeometry
	}
	return r, nil
}

// Columns is the number of cell columns that start inside the rectangle.
func (r Rect) Columns() int32 {
	return cellsIn(r.MaxX-r.MinX, r.Cell)
}

// Rows is the number of cell rows that start inside the rectangle.
func (r Rect) Rows() int32 {
	return cellsIn(r.MaxY-r.MinY, r.Cell)
}

// Size is the number of cells in the rectangle.
func (r Rect) Size() int {
	return int(r.Columns()) * int(r.Rows())
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p *pb.Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// At returns the point at column col and row row.
func (r Rect) At(col, row int32) *pb.Point {
	return &pb.Point{X: r.MinX + col*r.Cell, Y: r.MinY + row*r.Cell}
}

// CellAt returns the point with row-major index i.
func (r Rect) CellAt(i int) *pb.Point {
	cols := int(r.Columns())
	return r.At(int32(i%cols), int32(i/cols))
}

// Index is the row-major index of a grid aligned point inside the rectangle.
func (r Rect) Index(p *pb.Point) (int, bool) {
	if p == nil || !r.Contains(p) {
		return 0, false
	}
	dx, dy := p.X-r.MinX, p.Y-r.MinY
	if dx%r.Cell != 0 || dy%r.Cell != 0 {
		return 0, false
	}
	return int(dy/r.Cell)*int(r.Columns()) + int(dx/r.Cell), true
}

// InBounds is the wall check: p must lie on the full board.
func InBounds(board pb.Board, p *pb.Point) bool {
	return p.X >= 0 && p.X < board.Width && p.Y >= 0 && p.Y < board.Height
}

func cellsIn(span, cell int32) int32 {
	if span <= 0 {
		return 0
	}
	return (span + cell - 1) / cell
}
