package rules

import (
	"errors"
	"sort"

	"github.com/snakefield/engine/controller/pb"
)

// InitialLength is the length of a freshly placed snake.
const InitialLength = 3

// snakeAttempts bounds how many head cells PlaceSnake tries before giving up
// on a board where no 3 segment body fits.
const snakeAttempts = 32

// ErrNoFreeCell is returned when every playable cell is excluded.
var ErrNoFreeCell = errors.New("rules: no free cell available")

// Rand is the randomness the rules need. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Int63n(n int64) int64
}

// PlaceRandomCell picks a uniformly random grid cell inside r.
func PlaceRandomCell(rng Rand, r Rect) *pb.Point {
	return r.At(
		int32(rng.Intn(int(r.Columns()))),
		int32(rng.Intn(int(r.Rows()))),
	)
}

// PlaceItem picks a uniformly random playable cell that is not one of avoid.
// Nil entries in avoid are ignored.
func PlaceItem(rng Rand, board pb.Board, avoid ...*pb.Point) (*pb.Point, error) {
	r, err := Playable(board)
	if err != nil {
		return nil, err
	}

	excluded := []int{}
	for _, a := range avoid {
		idx, ok := r.Index(a)
		if !ok || containsInt(excluded, idx) {
			continue
		}
		excluded = append(excluded, idx)
	}

	free := r.Size() - len(excluded)
	if free <= 0 {
		return nil, ErrNoFreeCell
	}

	// Pick among the free cells, then step over the excluded indexes below it.
	n := rng.Intn(free)
	sort.Ints(excluded)
	for _, e := range excluded {
		if n >= e {
			n++
		}
	}
	return r.CellAt(n), nil
}

// PlaceSnake picks a random head and a direction whose trailing body fits in
// the playable area. The body extends from the head opposite to travel.
func PlaceSnake(rng Rand, board pb.Board) (*pb.Snake, pb.Direction, error) {
	r, err := Playable(board)
	if err != nil {
		return nil, "", err
	}

	reach := int32(InitialLength-1) * r.Cell
	for attempt := 0; attempt < snakeAttempts; attempt++ {
		head := PlaceRandomCell(rng, r)

		possible := []pb.Direction{}
		for _, d := range pb.Directions {
			if r.Contains(head.Shift(d.Opposite(), reach)) {
				possible = append(possible, d)
			}
		}
		if len(possible) == 0 {
			continue
		}

		direction := possible[rng.Intn(len(possible))]
		body := []*pb.Point{head}
		for i := 1; i < InitialLength; i++ {
			body = append(body, body[i-1].Shift(direction.Opposite(), r.Cell))
		}
		return &pb.Snake{Body: body}, direction, nil
	}
	return nil, "", ErrInvalidGeometry
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
