package session

import (
	"context"
	"testing"
	"time"

	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	"github.com/stretchr/testify/require"
)

func fastController(t *testing.T) *Controller {
	c, err := NewController(Options{
		Board: pb.Board{Width: 200, Height: 200, CellSize: 20},
		Tuning: pb.Tuning{
			StartInterval: 5 * time.Millisecond,
			IntervalStep:  time.Millisecond,
			IntervalFloor: 5 * time.Millisecond,
		},
		Seed: 3,
	})
	require.NoError(t, err)
	return c
}

func waitFor(t *testing.T, frames <-chan *pb.Frame, match func(*pb.Frame) bool) *pb.Frame {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case f, ok := <-frames:
			require.True(t, ok, "frames closed")
			if match(f) {
				return f
			}
		case <-timeout:
			t.Fatal("timed out waiting for frame")
		}
	}
}

func TestRunnerPlaysToGameOver(t *testing.T) {
	store := controller.InMemStore()
	c := fastController(t)
	r := NewRunner(c, store, 0)

	frames, unsubscribe := r.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	over := waitFor(t, frames, func(f *pb.Frame) bool { return f.Phase == pb.PhaseGameOver })
	require.NotNil(t, over.Death)
	require.Equal(t, pb.PhaseGameOver, r.Latest().Phase)

	list, err := store.ListSummaries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, over.SessionID, list[0].ID)
	require.Equal(t, over.Score, list[0].Score)

	// restart starts a new session and the next game over is stored too
	require.NoError(t, r.Send(ctx, Intent{Type: IntentRestart}))
	next := waitFor(t, frames, func(f *pb.Frame) bool {
		return f.Phase == pb.PhaseGameOver && f.SessionID != over.SessionID
	})
	list, err = store.ListSummaries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Contains(t, []string{list[0].ID, list[1].ID}, next.SessionID)

	cancel()
	require.Equal(t, context.Canceled, <-done)
}

func TestRunnerPauseHoldsTicks(t *testing.T) {
	c := testController(t, RealClock())
	r := NewRunner(c, nil, 4)
	frames, unsubscribe := r.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	require.NoError(t, r.Send(ctx, Intent{Type: IntentPause}))
	paused := waitFor(t, frames, func(f *pb.Frame) bool { return f.Phase == pb.PhasePaused })
	require.Equal(t, "pause-pc", paused.PauseMessage)

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, paused.Turn, r.Latest().Turn)
}

func TestRunnerSendInvalid(t *testing.T) {
	r := NewRunner(fastController(t), nil, 1)
	err := r.Send(context.Background(), Intent{Type: "jump"})
	require.Equal(t, ErrInvalidIntent, err)
}

func TestRunnerSendBlocksUntilCancelled(t *testing.T) {
	r := NewRunner(fastController(t), nil, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, r.Send(ctx, Intent{Type: IntentPause}))
	err := r.Send(ctx, Intent{Type: IntentPause})
	require.Equal(t, context.DeadlineExceeded, err)
}

func TestRunnerSubscribe(t *testing.T) {
	r := NewRunner(fastController(t), nil, 1)
	frames, unsubscribe := r.Subscribe()

	f := <-frames
	require.Equal(t, r.Latest(), f)

	unsubscribe()
	_, ok := <-frames
	require.False(t, ok)
	unsubscribe()
}
