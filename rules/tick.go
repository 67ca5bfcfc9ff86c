package rules

import (
	"fmt"
	"time"

	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

// FoodPoints is the score for one food without the multiplier.
const FoodPoints = 10

// TickResult describes what happened during one tick.
type TickResult struct {
	Turn    int64
	Ate     bool
	PowerUp bool
	Death   *pb.Death
	// Skipped is set when the session was not running and nothing happened.
	Skipped bool
}

// GameTick advances the session one tick. A session that is not running is
// left untouched.
func GameTick(s *pb.Session, now time.Time, rng Rand) (*TickResult, error) {
	if s == nil {
		return nil, fmt.Errorf("rules: invalid state, no session")
	}
	if s.Phase != pb.PhaseRunning {
		return &TickResult{Skipped: true}, nil
	}
	if s.Snake.Head() == nil {
		return nil, fmt.Errorf("rules: invalid state, session has no snake")
	}

	s.Turn++
	result := &TickResult{Turn: s.Turn}

	// 1. move the head along the requested direction
	// 2. head is inserted at the front of the body
	s.Heading = s.Direction
	s.Snake.Move(s.Direction, s.Board.CellSize)
	head := s.Snake.Head()

	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Turn":      s.Turn,
		"Head":      head,
		"Direction": s.Direction,
	}).Debug("tick")

	// 3. eat, grow, speed up and replace the food
	// 4. otherwise drop the tail
	if head.Equal(s.Food) {
		result.Ate = true
		eatFood(s, rng)
	} else {
		s.Snake.Shrink()
	}

	// 5. power-up
	if s.PowerUp != nil && head.Equal(s.PowerUp) {
		result.PowerUp = true
		consumePowerUp(s, now, rng)
	}

	// 6. wall and self collision end the session, whatever happened above
	if death := checkForDeath(s); death != nil {
		result.Death = death
		EndSession(s, death, now)
		return result, nil
	}

	if s.Food == nil {
		placeFood(s, rng)
	}
	s.NextTick = now.Add(s.TickInterval)
	return result, nil
}

func eatFood(s *pb.Session, rng Rand) {
	points := foodPoints(s)
	s.Score += points
	s.TickInterval = nextInterval(s.TickInterval, s.Tuning)

	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Turn":      s.Turn,
		"Food":      s.Food,
		"Points":    points,
		"Interval":  s.TickInterval,
	}).Info("snake ate")

	s.Food = nil
	placeFood(s, rng)
}

// placeFood puts food on a cell that is not the power-up. Failure leaves the
// food absent; the next tick tries again.
func placeFood(s *pb.Session, rng Rand) {
	food, err := PlaceItem(rng, s.Board, s.PowerUp)
	if err != nil {
		log.WithError(err).
			WithField("SessionID", s.ID).
			Warn("unable to place food")
		return
	}
	s.Food = food
}

func nextInterval(current time.Duration, t pb.Tuning) time.Duration {
	next := current - t.IntervalStep
	if next < t.IntervalFloor {
		return t.IntervalFloor
	}
	return next
}
