// Package worker plays headless games. A worker pops seeds, plays each game
// by jumping straight from one deadline to the next and stores the summary.
package worker

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/rules"
	"github.com/snakefield/engine/session"
	log "github.com/sirupsen/logrus"
)

// CauseAbandoned ends games that reach MaxTurns.
const CauseAbandoned = "abandoned"

// DefaultTurnChance is the one in N chance of a random turn each step.
const DefaultTurnChance = 4

// Worker plays games with a random steering policy.
type Worker struct {
	Store    controller.Store
	Board    pb.Board
	Tuning   pb.Tuning
	MaxTurns int64
	// TurnChance is the one in N chance of picking a new direction before
	// each deadline. Zero means DefaultTurnChance.
	TurnChance int
}

// Perform plays one game from seed and stores its summary.
func (w *Worker) Perform(ctx context.Context, seed int64) (*pb.Summary, error) {
	clock := &steppedClock{now: time.Unix(0, 0)}
	ctrl, err := session.NewController(session.Options{
		Board:  w.Board,
		Mode:   pb.ControlPC,
		Tuning: w.Tuning,
		Seed:   seed,
		Clock:  clock,
	})
	if err != nil {
		return nil, err
	}

	chance := w.TurnChance
	if chance <= 0 {
		chance = DefaultTurnChance
	}
	rng := rand.New(rand.NewSource(seed))
	for w.MaxTurns <= 0 || ctrl.Session().Turn < w.MaxTurns {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		next, ok := ctrl.NextDeadline()
		if !ok {
			break
		}
		if rng.Intn(chance) == 0 {
			ctrl.Direction(pb.Directions[rng.Intn(len(pb.Directions))])
		}
		clock.now = next
		if _, err := ctrl.Advance(next); err != nil {
			return nil, errors.Wrapf(err, "seed %d", seed)
		}
	}

	s := ctrl.Session()
	if !rules.CheckForGameOver(s) {
		rules.EndSession(s, &pb.Death{Turn: s.Turn, Cause: CauseAbandoned}, clock.now)
	}
	sum := ctrl.Summary()
	if w.Store != nil {
		if err := w.Store.PutSummary(ctx, sum); err != nil {
			return nil, errors.Wrap(err, "unable to store summary")
		}
	}
	return sum, nil
}

// Run plays a game for every seed until seeds is closed or ctx is done.
// Summaries of finished games are sent to results when it is not nil.
func (w *Worker) Run(ctx context.Context, workerID int, seeds <-chan int64, results chan<- *pb.Summary) {
	for {
		var seed int64
		select {
		case <-ctx.Done():
			return
		case s, ok := <-seeds:
			if !ok {
				return
			}
			seed = s
		}

		sum, err := w.Perform(ctx, seed)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"Worker": workerID,
				"Seed":   seed,
			}).Error("game failed")
			continue
		}
		log.WithFields(log.Fields{
			"Worker":    workerID,
			"SessionID": sum.ID,
			"Turn":      sum.Turns,
			"Score":     sum.Score,
			"Cause":     sum.Cause,
		}).Debug("game finished")

		if results != nil {
			select {
			case results <- sum:
			case <-ctx.Done():
				return
			}
		}
	}
}
