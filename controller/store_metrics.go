package controller

import (
	"context"
	"io"

	"github.com/snakefield/engine/controller/pb"
	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "engine",
			Subsystem: "store",
			Name:      "calls",
			Help:      "Calls processed by the store.",
		},
		[]string{"method"},
	)
	storeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Store calls that returned an error.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return func() { t.ObserveDuration() }
}

func countError(method string, err error) error {
	if err != nil && err != ErrNotFound {
		storeErrors.WithLabelValues(method).Inc()
	}
	return err
}

func init() {
	prometheus.MustRegister(storeCalls, storeErrors)
}

type metrics struct{ s Store }

func (m *metrics) PutSummary(c context.Context, s *pb.Summary) error {
	defer instrument("PutSummary")()
	return countError("PutSummary", m.s.PutSummary(c, s))
}

func (m *metrics) GetSummary(c context.Context, id string) (*pb.Summary, error) {
	defer instrument("GetSummary")()
	s, err := m.s.GetSummary(c, id)
	return s, countError("GetSummary", err)
}

func (m *metrics) ListSummaries(c context.Context, limit int) ([]*pb.Summary, error) {
	defer instrument("ListSummaries")()
	list, err := m.s.ListSummaries(c, limit)
	return list, countError("ListSummaries", err)
}

// Close closes the wrapped store when it holds resources.
func (m *metrics) Close() error {
	if c, ok := m.s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
