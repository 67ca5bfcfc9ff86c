package session

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/rules"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultCooldown is the minimum gap between two accepted pause toggles.
const DefaultCooldown = 200 * time.Millisecond

// Options configure a Controller.
type Options struct {
	Board  pb.Board
	Mode   pb.ControlMode
	Tuning pb.Tuning
	// Seed feeds the placement randomness. Zero picks one from the clock.
	Seed     int64
	Cooldown time.Duration
	Clock    Clock
}

// Controller owns one session and applies intents and deadlines to it. It is
// not safe for concurrent use; Runner serialises access.
type Controller struct {
	opts     Options
	clock    Clock
	rng      *rand.Rand
	cooldown *rate.Limiter
	session  *pb.Session
}

// NewController creates a controller with a freshly initialised session.
func NewController(opts Options) (*Controller, error) {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Seed == 0 {
		opts.Seed = opts.Clock.Now().UnixNano()
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultCooldown
	}

	c := &Controller{
		opts:  opts,
		clock: opts.Clock,
		rng:   rand.New(rand.NewSource(opts.Seed)),
	}
	if err := c.Restart(); err != nil {
		return nil, err
	}
	return c, nil
}

// Session is the live state. Callers must not hold on to it across intents.
func (c *Controller) Session() *pb.Session { return c.session }

// Frame is a snapshot of the live state.
func (c *Controller) Frame() *pb.Frame { return c.session.Frame() }

// Direction requests a new direction for the next tick.
func (c *Controller) Direction(d pb.Direction) bool {
	return rules.ChangeDirection(c.session, d)
}

// TogglePause flips between running and paused. Toggles arriving within the
// cooldown of the last accepted one are dropped.
func (c *Controller) TogglePause() bool {
	if c.session.Phase != pb.PhaseRunning && c.session.Phase != pb.PhasePaused {
		return false
	}
	now := c.clock.Now()
	if !c.cooldown.AllowN(now, 1) {
		log.WithField("SessionID", c.session.ID).Debug("pause toggle inside cooldown")
		return false
	}
	return rules.TogglePause(c.session, now, c.rng)
}

// Restart throws the session away and starts a new one on the current board
// and control mode. The pause cooldown starts over with it.
func (c *Controller) Restart() error {
	board, mode := c.opts.Board, c.opts.Mode
	if c.session != nil {
		board, mode = c.session.Board, c.session.Mode
	}
	s, err := rules.CreateInitialSession(rules.CreateRequest{
		Board:  board,
		Mode:   mode,
		Tuning: c.opts.Tuning,
	}, c.clock.Now(), c.rng)
	if err != nil {
		return errors.Wrap(err, "unable to create session")
	}
	c.session = s
	c.cooldown = rate.NewLimiter(rate.Every(c.opts.Cooldown), 1)
	return nil
}

// Resize changes the board size. Always reports a change.
func (c *Controller) Resize(width, height int32) bool {
	rules.Resize(c.session, width, height, c.clock.Now(), c.rng)
	return true
}

// SetControlMode switches the input surface reported to views.
func (c *Controller) SetControlMode(mode pb.ControlMode) bool {
	if mode != pb.ControlPC && mode != pb.ControlPhone {
		return false
	}
	c.session.Mode = mode
	return true
}

// Apply dispatches an intent and reports whether the session changed. Ticks
// and timers already due are run first so the intent lands after them.
func (c *Controller) Apply(in Intent) (bool, error) {
	advanced, err := c.Advance(c.clock.Now())
	if err != nil {
		return advanced, err
	}

	var ok bool
	switch in.Type {
	case IntentDirection:
		ok = c.Direction(in.Direction)
	case IntentPause:
		ok = c.TogglePause()
	case IntentRestart:
		if err := c.Restart(); err != nil {
			return advanced, err
		}
		ok = true
	case IntentResize:
		ok = c.Resize(in.Width, in.Height)
	case IntentMode:
		ok = c.SetControlMode(in.Mode)
	default:
		return advanced, ErrInvalidIntent
	}
	intents.WithLabelValues(string(in.Type), acceptedLabel(ok)).Inc()
	return ok || advanced, nil
}

// NextDeadline is when Advance next has work to do.
func (c *Controller) NextDeadline() (time.Time, bool) {
	return rules.NextDeadline(c.session)
}

// Advance applies every tick and timer due at or before now, earliest first.
// A tick and a timer due at the same instant run tick first. Each transition
// runs at its own deadline so a late wake up replays exactly what would have
// happened on time. Reports whether anything changed.
func (c *Controller) Advance(now time.Time) (bool, error) {
	changed := false
	for c.session.Phase == pb.PhaseRunning {
		s := c.session
		tickDue := !s.NextTick.IsZero() && !s.NextTick.After(now)
		due := rules.DueTimers(s, now)

		switch {
		case tickDue && (len(due) == 0 || !due[0].At.Before(s.NextTick)):
			res, err := rules.GameTick(s, s.NextTick, c.rng)
			if err != nil {
				return changed, errors.Wrapf(err, "tick %d failed", s.Turn)
			}
			ticks.Inc()
			if res.Death != nil {
				gamesOver.WithLabelValues(res.Death.Cause).Inc()
				finalScores.Observe(float64(s.Score))
			}
		case len(due) > 0:
			d := due[0]
			if !rules.FireTimer(s, d.Kind, d.Token, d.At, c.rng) {
				return changed, nil
			}
			timersFired.WithLabelValues(d.Kind.String()).Inc()
		default:
			return changed, nil
		}
		changed = true
	}
	return changed, nil
}

// Summary is the record of the session once it is over, nil before.
func (c *Controller) Summary() *pb.Summary {
	return rules.BuildSummary(c.session)
}
