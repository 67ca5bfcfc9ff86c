package testsuite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

var ended = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func summary(score int64, endedAfter time.Duration) *pb.Summary {
	return &pb.Summary{
		ID:          uuid.NewV4().String(),
		Score:       score,
		Length:      int32(3 + score/10),
		Turns:       score * 4,
		Cause:       "wall-collision",
		ControlMode: "PC",
		Width:       1120,
		Height:      400,
		StartedAt:   ended.UnixNano(),
		EndedAt:     ended.Add(endedAfter).UnixNano(),
	}
}

func testStorePutGet(t *testing.T, s controller.Store) {
	ctx := context.Background()
	sum := summary(40, time.Minute)
	sum.ControlMode = "Phone"
	sum.Cause = "snake-self-collision"

	// Put and fetch a summary.
	err := s.PutSummary(ctx, sum)
	require.Nil(t, err)
	got, err := s.GetSummary(ctx, sum.ID)
	require.Nil(t, err)
	require.Equal(t, sum, got)

	// Putting it again replaces it.
	sum.Score = 50
	err = s.PutSummary(ctx, sum)
	require.Nil(t, err)
	got, err = s.GetSummary(ctx, sum.ID)
	require.Nil(t, err)
	require.Equal(t, int64(50), got.Score)

	list, err := s.ListSummaries(ctx, 0)
	require.Nil(t, err)
	require.Len(t, list, 1)
}

func testStoreNotFound(t *testing.T, s controller.Store) {
	ctx := context.Background()

	_, err := s.GetSummary(ctx, uuid.NewV4().String())
	require.Equal(t, controller.ErrNotFound, err)

	list, err := s.ListSummaries(ctx, 10)
	require.Nil(t, err)
	require.Len(t, list, 0)
}

func testStoreInvalid(t *testing.T, s controller.Store) {
	ctx := context.Background()
	require.Equal(t, controller.ErrInvalidSummary, s.PutSummary(ctx, &pb.Summary{Score: 10}))
	require.Equal(t, controller.ErrInvalidSummary, s.PutSummary(ctx, nil))
}

func testStoreOrdering(t *testing.T, s controller.Store) {
	ctx := context.Background()

	low := summary(10, time.Minute)
	high := summary(90, time.Minute)
	tieEarly := summary(50, time.Minute)
	tieLate := summary(50, time.Hour)
	for _, sum := range []*pb.Summary{tieLate, low, high, tieEarly} {
		require.Nil(t, s.PutSummary(ctx, sum))
	}

	list, err := s.ListSummaries(ctx, 0)
	require.Nil(t, err)
	require.Len(t, list, 4)
	require.Equal(t, []string{high.ID, tieEarly.ID, tieLate.ID, low.ID}, ids(list))

	// The limit cuts between the tied scores.
	list, err = s.ListSummaries(ctx, 2)
	require.Nil(t, err)
	require.Equal(t, []string{high.ID, tieEarly.ID}, ids(list))

	list, err = s.ListSummaries(ctx, 100)
	require.Nil(t, err)
	require.Len(t, list, 4)
}

func testStoreConcurrentWriters(t *testing.T, s controller.Store) {
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			defer wg.Done()
			errs <- s.PutSummary(ctx, summary(int64(i*10), time.Duration(i)*time.Second))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.Nil(t, err)
	}

	list, err := s.ListSummaries(ctx, 0)
	require.Nil(t, err)
	require.Len(t, list, 20)
	require.Equal(t, int64(190), list[0].Score)
	require.Equal(t, int64(0), list[19].Score)
}

func ids(list []*pb.Summary) []string {
	out := []string{}
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

// Suite will execute the store testsuite. newStore must return an empty
// store each time it is called.
func Suite(t *testing.T, newStore func() controller.Store) {
	run := func(name string, test func(*testing.T, controller.Store)) {
		t.Run(name, func(t *testing.T) {
			test(t, controller.InstrumentStore(newStore()))
		})
	}
	run("PutGet", testStorePutGet)
	run("NotFound", testStoreNotFound)
	run("Invalid", testStoreInvalid)
	run("Ordering", testStoreOrdering)
	run("ConcurrentWriters", testStoreConcurrentWriters)
}
