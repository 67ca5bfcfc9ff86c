package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/gogo/protobuf/proto"
	"github.com/snakefield/engine/controller/pb"
)

var (
	// ErrNotFound is returned when a summary is not found.
	ErrNotFound = errors.New("controller: summary not found")
	// ErrInvalidSummary is returned for a summary that cannot be stored.
	ErrInvalidSummary = errors.New("controller: summary has no id")
)

// Store is the interface to the summary store. Summaries are written once,
// when a session ends, and listed best score first.
type Store interface {
	PutSummary(context.Context, *pb.Summary) error
	GetSummary(context.Context, string) (*pb.Summary, error)
	// ListSummaries returns at most limit summaries ordered by
	// pb.SortSummaries. A limit <= 0 returns all of them.
	ListSummaries(ctx context.Context, limit int) ([]*pb.Summary, error)
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{
		summaries: map[string]*pb.Summary{},
	}
}

type inmem struct {
	summaries map[string]*pb.Summary
	lock      sync.Mutex
}

func (in *inmem) PutSummary(ctx context.Context, s *pb.Summary) error {
	if s == nil || s.ID == "" {
		return ErrInvalidSummary
	}
	in.lock.Lock()
	defer in.lock.Unlock()

	in.summaries[s.ID] = proto.Clone(s).(*pb.Summary)
	return nil
}

func (in *inmem) GetSummary(ctx context.Context, id string) (*pb.Summary, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if s, ok := in.summaries[id]; ok {
		return proto.Clone(s).(*pb.Summary), nil
	}
	return nil, ErrNotFound
}

func (in *inmem) ListSummaries(ctx context.Context, limit int) ([]*pb.Summary, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	list := make([]*pb.Summary, 0, len(in.summaries))
	for _, s := range in.summaries {
		list = append(list, proto.Clone(s).(*pb.Summary))
	}
	return Top(list, limit), nil
}

// Top sorts summaries best first and keeps at most limit of them.
func Top(list []*pb.Summary, limit int) []*pb.Summary {
	pb.SortSummaries(list)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
