package rules

import (
	"testing"

	"github.com/snakefield/engine/controller/pb"
	"github.com/stretchr/testify/require"
)

func TestPlayable(t *testing.T) {
	r, err := Playable(pb.Board{Width: 200, Height: 200, CellSize: 20})
	require.NoError(t, err)
	require.Equal(t, Rect{MinX: 40, MinY: 40, MaxX: 160, MaxY: 160, Cell: 20}, r)
	require.Equal(t, int32(6), r.Columns())
	require.Equal(t, int32(6), r.Rows())
	require.Equal(t, 36, r.Size())
}

func TestPlayablePartialCell(t *testing.T) {
	// 30 units of playable width still holds one cell start
	r, err := Playable(pb.Board{Width: 110, Height: 200, CellSize: 20})
	require.NoError(t, err)
	require.Equal(t, int32(2), r.Columns())
	require.True(t, r.Contains(r.At(1, 0)))
}

func TestPlayableInvalid(t *testing.T) {
	boards := []pb.Board{
		{Width: 80, Height: 200, CellSize: 20},
		{Width: 200, Height: 60, CellSize: 20},
		{Width: 200, Height: 200, CellSize: 0},
		{Width: -10, Height: 200, CellSize: 20},
	}
	for _, b := range boards {
		_, err := Playable(b)
		require.Equal(t, ErrInvalidGeometry, err, "board %+v", b)
	}
}

func TestRectAt(t *testing.T) {
	r, err := Playable(pb.Board{Width: 200, Height: 200, CellSize: 20})
	require.NoError(t, err)
	require.Equal(t, int32(20), r.Cell)
	require.Equal(t, &pb.Point{X: 40, Y: 40}, r.At(0, 0))
	require.Equal(t, &pb.Point{X: 80, Y: 60}, r.At(2, 1))
	require.Equal(t, r.At(2, 1), r.CellAt(int(r.Columns())+2))
}

func TestRectIndex(t *testing.T) {
	r, err := Playable(pb.Board{Width: 200, Height: 200, CellSize: 20})
	require.NoError(t, err)

	for i := 0; i < r.Size(); i++ {
		p := r.CellAt(i)
		idx, ok := r.Index(p)
		require.True(t, ok)
		require.Equal(t, i, idx)
	}

	_, ok := r.Index(&pb.Point{X: 41, Y: 40})
	require.False(t, ok, "unaligned point")
	_, ok = r.Index(&pb.Point{X: 20, Y: 40})
	require.False(t, ok, "margin point")
	_, ok = r.Index(nil)
	require.False(t, ok)
}

func TestInBounds(t *testing.T) {
	board := pb.Board{Width: 200, Height: 200, CellSize: 20}
	require.True(t, InBounds(board, &pb.Point{X: 0, Y: 0}))
	require.True(t, InBounds(board, &pb.Point{X: 180, Y: 180}))
	points := []*pb.Point{
		{X: -20, Y: 100},
		{X: 200, Y: 100},
		{X: 100, Y: -20},
		{X: 100, Y: 200},
	}
	for _, p := range points {
		require.False(t, InBounds(board, p), "point %v", p)
	}
}
