package rules

import (
	"math/rand"
	"time"

	"github.com/snakefield/engine/controller/pb"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

// newSession is a running 200x200 session with the snake heading right from
// (100,100) and food well out of the way.
func newSession() *pb.Session {
	return &pb.Session{
		ID:    "test",
		Board: pb.Board{Width: 200, Height: 200, CellSize: 20},
		Mode:  pb.ControlPC,
		Phase: pb.PhaseRunning,
		Snake: &pb.Snake{Body: []*pb.Point{
			{X: 100, Y: 100},
			{X: 80, Y: 100},
			{X: 60, Y: 100},
		}},
		Direction:    pb.DirectionRight,
		Heading:      pb.DirectionRight,
		Food:         &pb.Point{X: 40, Y: 140},
		PowerUpState: pb.PowerUpPending,
		Tuning:       DefaultTuning(),
		TickInterval: DefaultStartInterval,
		NextTick:     epoch.Add(DefaultStartInterval),
		StartedAt:    epoch,
	}
}
