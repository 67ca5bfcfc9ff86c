package worker

import (
	"context"
	"testing"
	"time"

	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/rules"
	"github.com/stretchr/testify/require"
)

func testWorker(store controller.Store) *Worker {
	return &Worker{
		Store:    store,
		Board:    pb.Board{Width: 400, Height: 200, CellSize: 20},
		Tuning:   rules.DefaultTuning(),
		MaxTurns: 100000,
	}
}

func TestWorker_Perform(t *testing.T) {
	store := controller.InMemStore()
	sum, err := testWorker(store).Perform(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, sum)
	require.NotEmpty(t, sum.Cause)
	require.True(t, sum.Turns > 0)
	require.True(t, sum.EndedAt >= sum.StartedAt)

	stored, err := store.GetSummary(context.Background(), sum.ID)
	require.NoError(t, err)
	require.Equal(t, sum.Score, stored.Score)
}

func TestWorker_PerformDeterministic(t *testing.T) {
	w := testWorker(nil)
	a, err := w.Perform(context.Background(), 5)
	require.NoError(t, err)
	b, err := w.Perform(context.Background(), 5)
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, a.Turns, b.Turns)
	require.Equal(t, a.Score, b.Score)
	require.Equal(t, a.Cause, b.Cause)
}

func TestWorker_PerformAbandoned(t *testing.T) {
	w := testWorker(nil)
	w.Board = pb.Board{Width: 2000, Height: 2000, CellSize: 20}
	w.MaxTurns = 1
	w.TurnChance = 1 << 30

	sum, err := w.Perform(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, CauseAbandoned, sum.Cause)
	require.Equal(t, int64(1), sum.Turns)
}

func TestWorker_PerformWaitingBoard(t *testing.T) {
	w := testWorker(nil)
	w.Board = pb.Board{Width: 20, Height: 20, CellSize: 20}

	sum, err := w.Perform(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, CauseAbandoned, sum.Cause)
	require.Equal(t, int64(0), sum.Turns)
}

func TestWorker_PerformCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testWorker(nil).Perform(ctx, 3)
	require.Equal(t, context.Canceled, err)
}

func TestWorker_Run(t *testing.T) {
	store := controller.InMemStore()
	w := testWorker(store)

	seeds := make(chan int64, 3)
	results := make(chan *pb.Summary, 3)
	seeds <- 1
	seeds <- 2
	seeds <- 3
	close(seeds)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	w.Run(ctx, 1, seeds, results)
	close(results)

	count := 0
	for range results {
		count++
	}
	require.Equal(t, 3, count)

	list, err := store.ListSummaries(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
}

func TestWorker_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	testWorker(nil).Run(ctx, 1, make(chan int64), nil)
	require.Equal(t, context.DeadlineExceeded, ctx.Err())
}
