package redisstore

import (
	"context"
	"strconv"

	"github.com/go-redis/redis"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
)

const rankKey = "summaries"

func summaryKey(id string) string { return "summary:" + id }

// RedisStore keeps each summary proto encoded under its own key and ranks
// them in a sorted set by score.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore will create a new instance of an underlying redis client, so
// it should not be re-created across goroutines. The connection is tested
// immediately.
// - connectURL see: github.com/go-redis/redis/options.go for URL specifics
func NewRedisStore(connectURL string) (*RedisStore, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	// Validate it's connected
	err = client.Ping().Err()
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &RedisStore{client: client}, nil
}

// Close closes the underlying client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

// PutSummary writes the summary and its rank in one transaction.
func (rs *RedisStore) PutSummary(ctx context.Context, s *pb.Summary) error {
	if s == nil || s.ID == "" {
		return controller.ErrInvalidSummary
	}
	data, err := proto.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "unable to encode summary")
	}
	_, err = rs.client.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.Set(summaryKey(s.ID), data, 0)
		pipe.ZAdd(rankKey, redis.Z{Score: float64(s.Score), Member: s.ID})
		return nil
	})
	return errors.Wrapf(err, "unable to store summary %s", s.ID)
}

// GetSummary fetches one summary.
func (rs *RedisStore) GetSummary(ctx context.Context, id string) (*pb.Summary, error) {
	data, err := rs.client.Get(summaryKey(id)).Bytes()
	if err == redis.Nil {
		return nil, controller.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get summary %s", id)
	}
	return decode(data)
}

// ListSummaries reads the top of the ranking. Every summary tied with the
// last one in range is fetched so ties are broken the same way as the other
// stores.
func (rs *RedisStore) ListSummaries(ctx context.Context, limit int) ([]*pb.Summary, error) {
	var ids []string
	if limit <= 0 {
		all, err := rs.client.ZRevRange(rankKey, 0, -1).Result()
		if err != nil {
			return nil, errors.Wrap(err, "unable to list summaries")
		}
		ids = all
	} else {
		top, err := rs.client.ZRevRangeWithScores(rankKey, 0, int64(limit-1)).Result()
		if err != nil {
			return nil, errors.Wrap(err, "unable to list summaries")
		}
		if len(top) == 0 {
			return []*pb.Summary{}, nil
		}
		min := strconv.FormatFloat(top[len(top)-1].Score, 'f', -1, 64)
		ids, err = rs.client.ZRevRangeByScore(rankKey, redis.ZRangeBy{Max: "+inf", Min: min}).Result()
		if err != nil {
			return nil, errors.Wrap(err, "unable to list summaries")
		}
	}
	if len(ids) == 0 {
		return []*pb.Summary{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, summaryKey(id))
	}
	values, err := rs.client.MGet(keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch summaries")
	}

	list := make([]*pb.Summary, 0, len(values))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// ranked but the value is gone
			continue
		}
		s, err := decode([]byte(str))
		if err != nil {
			return nil, errors.Wrapf(err, "bad summary %s", ids[i])
		}
		list = append(list, s)
	}
	return controller.Top(list, limit), nil
}

func decode(data []byte) (*pb.Summary, error) {
	s := &pb.Summary{}
	if err := proto.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "unable to decode summary")
	}
	return s, nil
}
