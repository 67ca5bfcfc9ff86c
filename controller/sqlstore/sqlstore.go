package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq" // Import pq driver.

	"github.com/pkg/errors"
	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

const migrations = `
CREATE TABLE IF NOT EXISTS summaries (
	id VARCHAR(255) PRIMARY KEY,
	score BIGINT NOT NULL,
	ended_at BIGINT NOT NULL,
	value jsonb,
	created timestamp default now()
);
CREATE INDEX IF NOT EXISTS summaries_rank ON summaries (score DESC, ended_at ASC);
`

// Options tune the connection pool.
type Options struct {
	MaxOpenConns int
	MaxIdleConns int
}

// NewSQLStore returns a new store using a postgres database.
func NewSQLStore(url string, opts Options) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}

	if err = db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "unable to reach database")
	}

	_, err = db.ExecContext(ctx, migrations)
	if err != nil {
		return nil, errors.Wrap(err, "unable to migrate")
	}
	return &Store{db: db}, nil
}

// Store represents an SQL store.
type Store struct {
	db *sql.DB
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// transact is a transaction wrapper, helps avoid failed to close connections.
func (s *Store) transact(
	ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
			panic(p) // re-throw panic after Rollback
		} else if err != nil {
			// err is non-nil; don't change it
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
		} else {
			err = tx.Commit() // err is nil; if Commit returns error update err
		}
	}()
	err = txFunc(tx)
	return err
}

// PutSummary upserts a summary.
func (s *Store) PutSummary(ctx context.Context, sum *pb.Summary) error {
	if sum == nil || sum.ID == "" {
		return controller.ErrInvalidSummary
	}
	data, err := json.Marshal(sum)
	if err != nil {
		return errors.Wrap(err, "unable to encode summary")
	}
	err = s.transact(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO summaries (id, score, ended_at, value) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET score=$2, ended_at=$3, value=$4`,
			sum.ID, sum.Score, sum.EndedAt, data,
		)
		return err
	})
	return errors.Wrapf(err, "unable to store summary %s", sum.ID)
}

// GetSummary fetches one summary.
func (s *Store) GetSummary(ctx context.Context, id string) (*pb.Summary, error) {
	r := s.db.QueryRowContext(ctx, `SELECT value FROM summaries WHERE id=$1`, id)

	var data []byte
	if err := r.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, controller.ErrNotFound
		}
		return nil, errors.Wrapf(err, "unable to get summary %s", id)
	}
	return decode(data)
}

// ListSummaries returns the best summaries first.
func (s *Store) ListSummaries(ctx context.Context, limit int) ([]*pb.Summary, error) {
	query := `SELECT value FROM summaries ORDER BY score DESC, ended_at ASC, id ASC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list summaries")
	}
	defer rows.Close()

	list := []*pb.Summary{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, errors.Wrap(err, "unable to scan summary")
		}
		sum, err := decode(data)
		if err != nil {
			return nil, err
		}
		list = append(list, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to list summaries")
	}
	return controller.Top(list, limit), nil
}

func decode(data []byte) (*pb.Summary, error) {
	sum := &pb.Summary{}
	if err := json.Unmarshal(data, sum); err != nil {
		return nil, errors.Wrap(err, "unable to decode summary")
	}
	return sum, nil
}
