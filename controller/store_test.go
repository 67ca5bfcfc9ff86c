package controller_test

import (
	"context"
	"io"
	"testing"

	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/controller/testsuite"
	"github.com/stretchr/testify/require"
)

func TestInMemStore(t *testing.T) {
	testsuite.Suite(t, controller.InMemStore)
}

func TestInstrumentedStore(t *testing.T) {
	testsuite.Suite(t, func() controller.Store {
		return controller.InstrumentStore(controller.InMemStore())
	})
}

type closingStore struct {
	controller.Store
	closed bool
}

func (c *closingStore) Close() error {
	c.closed = true
	return nil
}

func TestInstrumentedStoreClose(t *testing.T) {
	inner := &closingStore{Store: controller.InMemStore()}
	s := controller.InstrumentStore(inner)
	closer, ok := s.(io.Closer)
	require.True(t, ok)
	require.NoError(t, closer.Close())
	require.True(t, inner.closed)

	closer = controller.InstrumentStore(controller.InMemStore()).(io.Closer)
	require.NoError(t, closer.Close())
}

func TestInMemStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := controller.InMemStore()
	sum := &pb.Summary{ID: "a", Score: 10}
	require.NoError(t, s.PutSummary(ctx, sum))

	sum.Score = 99
	got, err := s.GetSummary(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, int64(10), got.Score)

	got.Score = 50
	again, err := s.GetSummary(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, int64(10), again.Score)
}

func TestTop(t *testing.T) {
	list := []*pb.Summary{
		{ID: "a", Score: 10},
		{ID: "b", Score: 30},
		{ID: "c", Score: 20},
	}
	top := controller.Top(list, 2)
	require.Len(t, top, 2)
	require.Equal(t, "b", top[0].ID)
	require.Equal(t, "c", top[1].ID)

	require.Len(t, controller.Top(list, 0), 3)
}
