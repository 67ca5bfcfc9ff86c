package session

import (
	"context"
	"sync"
	"time"

	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

// DefaultIntentBuffer is the intent queue length used when none is given.
const DefaultIntentBuffer = 64

// Runner drives a Controller from a single goroutine. Views send intents and
// receive frames; none of them touch the session directly.
type Runner struct {
	controller *Controller
	clock      Clock
	store      controller.Store
	intents    chan Intent

	lock    sync.RWMutex
	latest  *pb.Frame
	subs    map[int]chan *pb.Frame
	nextSub int

	saved string
}

// NewRunner builds a runner. Summaries of finished sessions go to store,
// which may be nil.
func NewRunner(c *Controller, store controller.Store, buffer int) *Runner {
	if buffer <= 0 {
		buffer = DefaultIntentBuffer
	}
	return &Runner{
		controller: c,
		clock:      c.clock,
		store:      store,
		intents:    make(chan Intent, buffer),
		latest:     c.Frame(),
		subs:       map[int]chan *pb.Frame{},
	}
}

// Send queues an intent. It blocks while the queue is full.
func (r *Runner) Send(ctx context.Context, in Intent) error {
	if err := in.Validate(); err != nil {
		return err
	}
	select {
	case r.intents <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Latest is the most recently published frame.
func (r *Runner) Latest() *pb.Frame {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.latest
}

// Subscribe returns a channel of frames and a func to stop receiving them.
// Slow subscribers only ever see the newest frame.
func (r *Runner) Subscribe() (<-chan *pb.Frame, func()) {
	r.lock.Lock()
	defer r.lock.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan *pb.Frame, 1)
	ch <- r.latest
	r.subs[id] = ch

	return ch, func() {
		r.lock.Lock()
		defer r.lock.Unlock()
		if _, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(ch)
		}
	}
}

// Run processes intents and deadlines until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	log.WithField("SessionID", r.controller.Session().ID).Info("runner started")
	defer r.closeSubscribers()
	r.publish(ctx)

	for {
		var wake <-chan time.Time
		if next, ok := r.controller.NextDeadline(); ok {
			d := next.Sub(r.clock.Now())
			if d < 0 {
				d = 0
			}
			wake = r.clock.After(d)
		}

		select {
		case <-ctx.Done():
			log.WithField("SessionID", r.controller.Session().ID).Info("runner stopped")
			return ctx.Err()
		case in := <-r.intents:
			changed, err := r.controller.Apply(in)
			if err != nil {
				log.WithError(err).WithField("Intent", in.Type).Warn("unable to apply intent")
			}
			if changed {
				r.publish(ctx)
			}
		case <-wake:
			changed, err := r.controller.Advance(r.clock.Now())
			if err != nil {
				return err
			}
			if changed {
				r.publish(ctx)
			}
		}
	}
}

func (r *Runner) publish(ctx context.Context) {
	r.saveSummary(ctx)

	f := r.controller.Frame()
	r.lock.Lock()
	defer r.lock.Unlock()
	r.latest = f
	for _, ch := range r.subs {
		select {
		case ch <- f:
		default:
			// drop the stale frame in favour of the new one
			select {
			case <-ch:
			default:
			}
			ch <- f
		}
	}
}

// saveSummary stores the summary of a finished session once.
func (r *Runner) saveSummary(ctx context.Context) {
	sum := r.controller.Summary()
	if sum == nil || sum.ID == r.saved {
		return
	}
	r.saved = sum.ID
	if r.store == nil {
		return
	}
	if err := r.store.PutSummary(ctx, sum); err != nil {
		log.WithError(err).
			WithField("SessionID", sum.ID).
			Error("unable to store summary")
	}
}

func (r *Runner) closeSubscribers() {
	r.lock.Lock()
	defer r.lock.Unlock()
	for id, ch := range r.subs {
		delete(r.subs, id)
		close(ch)
	}
}
