package server

import (
	"io"

	"github.com/pkg/errors"
	"github.com/snakefield/engine/config"
	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/filestore"
	"github.com/snakefield/engine/controller/redisstore"
	"github.com/snakefield/engine/controller/sqlstore"
	log "github.com/sirupsen/logrus"
)

// OpenStore opens the named score backend, as one of: inmem, file, redis, sql.
func OpenStore(backend, args string) (controller.Store, error) {
	var store controller.Store
	var err error
	switch backend {
	case "inmem":
		store = controller.InMemStore()
	case "file":
		store = filestore.NewFileStore(args)
	case "redis":
		store, err = redisstore.NewRedisStore(args)
	case "sql":
		store, err = sqlstore.NewSQLStore(args, sqlstore.Options{
			MaxOpenConns: config.MaxOpenConns,
			MaxIdleConns: config.MaxIdleConns,
		})
	default:
		return nil, errors.Errorf("invalid backend %q", backend)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s backend", backend)
	}
	return controller.InstrumentStore(store), nil
}

// CloseStore closes the backend if it holds resources.
func CloseStore(store controller.Store) {
	c, ok := store.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		log.WithError(err).Error("unable to close store")
	}
}
