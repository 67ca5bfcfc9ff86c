package rules

import (
	"time"

	"github.com/snakefield/engine/controller/pb"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// Defaults taken by a session unless configured otherwise.
const (
	DefaultWidth         = 1120
	DefaultHeight        = 400
	DefaultCellSize      = 20
	DefaultStartInterval = 200 * time.Millisecond
	DefaultIntervalStep  = 10 * time.Millisecond
	DefaultIntervalFloor = 100 * time.Millisecond
)

// CreateRequest describes a new session.
type CreateRequest struct {
	Board  pb.Board
	Mode   pb.ControlMode
	Tuning pb.Tuning
}

// DefaultTuning is the speed curve of the original game: 200ms down to 100ms
// in 10ms steps.
func DefaultTuning() pb.Tuning {
	return pb.Tuning{
		StartInterval: DefaultStartInterval,
		IntervalStep:  DefaultIntervalStep,
		IntervalFloor: DefaultIntervalFloor,
	}
}

// CreateInitialSession builds a new session. When the board leaves no room to
// place the snake the session is returned in the waiting phase and is
// initialised by the first Resize to a playable board.
func CreateInitialSession(req CreateRequest, now time.Time, rng Rand) (*pb.Session, error) {
	tuning := req.Tuning
	if tuning.IntervalFloor <= 0 {
		tuning.IntervalFloor = DefaultIntervalFloor
	}
	if tuning.StartInterval < tuning.IntervalFloor {
		tuning.StartInterval = tuning.IntervalFloor
	}
	mode := req.Mode
	if mode == "" {
		mode = pb.ControlPC
	}

	s := &pb.Session{
		ID:           uuid.NewV4().String(),
		Board:        req.Board,
		Mode:         mode,
		Phase:        pb.PhaseWaiting,
		PowerUpState: pb.PowerUpAbsent,
		Tuning:       tuning,
		TickInterval: tuning.StartInterval,
		StartedAt:    now,
	}

	err := initialize(s, now, rng)
	if err == ErrInvalidGeometry {
		log.WithFields(log.Fields{
			"SessionID": s.ID,
			"Board":     s.Board,
		}).Warn("board too small, waiting for a resize")
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// initialize places the snake and food and starts the clocks.
func initialize(s *pb.Session, now time.Time, rng Rand) error {
	snake, direction, err := PlaceSnake(rng, s.Board)
	if err != nil {
		return err
	}
	food, err := PlaceItem(rng, s.Board)
	if err != nil {
		return err
	}

	s.Snake = snake
	s.Direction = direction
	s.Heading = direction
	s.Food = food
	s.Phase = pb.PhaseRunning
	s.StartedAt = now
	s.NextTick = now.Add(s.TickInterval)
	schedulePowerUp(s, now, rng)

	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Head":      snake.Head(),
		"Direction": direction,
		"Food":      food,
	}).Info("session started")
	return nil
}
