package session

import (
	"sync"
	"testing"
	"time"

	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/rules"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	lock sync.Mutex
	now  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// After never fires; tests drive Controller.Advance by hand.
func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	return make(chan time.Time)
}

func testController(t *testing.T, clock Clock) *Controller {
	c, err := NewController(Options{
		Board:  pb.Board{Width: 1120, Height: 400, CellSize: 20},
		Tuning: rules.DefaultTuning(),
		Seed:   42,
		Clock:  clock,
	})
	require.NoError(t, err)
	return c
}

// straighten puts the snake somewhere with room to run right.
func straighten(s *pb.Session) {
	s.Snake = &pb.Snake{Body: []*pb.Point{
		{X: 100, Y: 100},
		{X: 80, Y: 100},
		{X: 60, Y: 100},
	}}
	s.Direction = pb.DirectionRight
	s.Heading = pb.DirectionRight
	s.Food = &pb.Point{X: 600, Y: 300}
}

func TestNewController(t *testing.T) {
	c := testController(t, newFakeClock())
	f := c.Frame()
	require.Equal(t, pb.PhaseRunning, f.Phase)
	require.Len(t, f.Snake, rules.InitialLength)
	require.Equal(t, pb.ControlPC, f.ControlMode)
	require.Equal(t, int64(200), f.TickIntervalMS)
	require.Nil(t, c.Summary())
}

func TestTogglePauseCooldown(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)

	require.True(t, c.TogglePause())
	require.Equal(t, pb.PhasePaused, c.Session().Phase)

	clock.Advance(100 * time.Millisecond)
	require.False(t, c.TogglePause())
	require.Equal(t, pb.PhasePaused, c.Session().Phase)

	clock.Advance(100 * time.Millisecond)
	require.True(t, c.TogglePause())
	require.Equal(t, pb.PhaseRunning, c.Session().Phase)
}

func TestTogglePauseBurst(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)

	changes := 0
	for i := 0; i < 10; i++ {
		if c.TogglePause() {
			changes++
		}
		clock.Advance(19 * time.Millisecond)
	}
	require.Equal(t, 1, changes)
	require.Equal(t, pb.PhasePaused, c.Session().Phase)
}

func TestTogglePauseAfterGameOverKeepsCooldown(t *testing.T) {
	c := testController(t, newFakeClock())
	rules.EndSession(c.Session(), &pb.Death{Cause: rules.DeathCauseWallCollision}, c.clock.Now())

	require.False(t, c.TogglePause())
	require.NoError(t, c.Restart())
	require.True(t, c.TogglePause())
}

func TestRestartResetsCooldown(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)

	require.True(t, c.TogglePause())
	clock.Advance(50 * time.Millisecond)
	require.NoError(t, c.Restart())
	require.Equal(t, pb.PhaseRunning, c.Session().Phase)

	require.True(t, c.TogglePause())
	require.Equal(t, pb.PhasePaused, c.Session().Phase)
}

func TestAdvance(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)
	straighten(c.Session())
	start := clock.Now()

	changed, err := c.Advance(start.Add(199 * time.Millisecond))
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = c.Advance(start.Add(200 * time.Millisecond))
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, int64(1), c.Session().Turn)
	require.Equal(t, &pb.Point{X: 120, Y: 100}, c.Session().Snake.Head())

	// a late wake up catches up tick by tick
	changed, err = c.Advance(start.Add(time.Second))
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, int64(5), c.Session().Turn)
	require.Equal(t, &pb.Point{X: 200, Y: 100}, c.Session().Snake.Head())
	require.Equal(t, start.Add(1200*time.Millisecond), c.Session().NextTick)

	next, ok := c.NextDeadline()
	require.True(t, ok)
	require.Equal(t, start.Add(1200*time.Millisecond), next)
}

func TestAdvanceFiresTimers(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)
	s := c.Session()
	appear := s.Timers[pb.TimerPowerUpAppear]
	require.True(t, appear.Armed())

	// keep the snake alive by pausing the tick and walking timers only
	s.NextTick = appear.Due.Add(time.Hour)
	changed, err := c.Advance(appear.Due)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, pb.PowerUpPresent, s.PowerUpState)
	require.NotNil(t, s.PowerUp)
	require.Equal(t, int64(0), s.Turn)
}

func TestAdvanceWhilePaused(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)
	require.True(t, c.TogglePause())

	changed, err := c.Advance(clock.Now().Add(time.Minute))
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, int64(0), c.Session().Turn)

	_, ok := c.NextDeadline()
	require.False(t, ok)
}

func TestAdvanceStopsAtGameOver(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)
	straighten(c.Session())

	changed, err := c.Advance(clock.Now().Add(time.Hour))
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, pb.PhaseGameOver, c.Session().Phase)
	require.Equal(t, rules.DeathCauseWallCollision, c.Session().Death.Cause)

	// head walks from x=100 to x=1120
	require.Equal(t, int64(51), c.Session().Turn)

	sum := c.Summary()
	require.NotNil(t, sum)
	require.Equal(t, c.Session().ID, sum.ID)
	require.Equal(t, rules.DeathCauseWallCollision, sum.Cause)
}

func TestApply(t *testing.T) {
	c := testController(t, newFakeClock())
	straighten(c.Session())

	ok, err := c.Apply(Intent{Type: IntentDirection, Direction: pb.DirectionLeft})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = c.Apply(Intent{Type: IntentDirection, Direction: pb.DirectionUp})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, pb.DirectionUp, c.Session().Direction)

	ok, err = c.Apply(Intent{Type: IntentMode, Mode: pb.ControlPhone})
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, c.TogglePause())
	require.Equal(t, "pause-phone", c.Frame().PauseMessage)

	ok, err = c.Apply(Intent{Type: IntentResize, Width: 800, Height: 600})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(800), c.Frame().Width)

	id := c.Session().ID
	ok, err = c.Apply(Intent{Type: IntentRestart})
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, id, c.Session().ID)
	require.Equal(t, pb.PhaseRunning, c.Session().Phase)
	require.Equal(t, pb.Board{Width: 800, Height: 600, CellSize: 20}, c.Session().Board)
	require.Equal(t, pb.ControlPhone, c.Session().Mode)

	_, err = c.Apply(Intent{Type: "jump"})
	require.Equal(t, ErrInvalidIntent, err)
}

func TestApplyRunsOverdueTicksFirst(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)
	straighten(c.Session())
	clock.Advance(time.Second)

	ok, err := c.Apply(Intent{Type: IntentDirection, Direction: pb.DirectionUp})
	require.NoError(t, err)
	require.True(t, ok)

	// the five overdue ticks ran right, the turn waits for the next tick
	s := c.Session()
	require.Equal(t, int64(5), s.Turn)
	require.Equal(t, &pb.Point{X: 200, Y: 100}, s.Snake.Head())
	require.Equal(t, pb.DirectionRight, s.Heading)
	require.Equal(t, pb.DirectionUp, s.Direction)

	_, err = c.Advance(clock.Advance(200 * time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, &pb.Point{X: 200, Y: 80}, s.Snake.Head())
}

func TestApplyPauseKeepsOverdueTicks(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)
	straighten(c.Session())
	clock.Advance(time.Second)

	ok, err := c.Apply(Intent{Type: IntentPause})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(5), c.Session().Turn)
	require.Equal(t, pb.PhasePaused, c.Session().Phase)
}

func TestApplyRejectedIntentStillReportsCatchUp(t *testing.T) {
	clock := newFakeClock()
	c := testController(t, clock)
	straighten(c.Session())
	clock.Advance(200 * time.Millisecond)

	ok, err := c.Apply(Intent{Type: IntentDirection, Direction: pb.DirectionLeft})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(1), c.Session().Turn)
	require.Equal(t, pb.DirectionRight, c.Session().Direction)
}

func TestControllerWaitingBoard(t *testing.T) {
	clock := newFakeClock()
	c, err := NewController(Options{
		Board: pb.Board{Width: 40, Height: 40, CellSize: 20},
		Seed:  1,
		Clock: clock,
	})
	require.NoError(t, err)
	require.Equal(t, pb.PhaseWaiting, c.Frame().Phase)

	changed, err := c.Advance(clock.Now().Add(time.Minute))
	require.NoError(t, err)
	require.False(t, changed)

	require.True(t, c.Resize(400, 300))
	require.Equal(t, pb.PhaseRunning, c.Frame().Phase)
}
