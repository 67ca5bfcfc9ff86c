package filestore

import (
	"context"
	"os"
	"os/user"
	"path"
	"sync"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

func defaultDir() string {
	return path.Join(homeDir(), ".snakefield")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// NewFileStore returns a file based store implementation. Summaries are
// appended as JSON lines to a single file in directory and read back on first
// use.
func NewFileStore(directory string) controller.Store {
	if directory == "" {
		directory = defaultDir()
	}
	return &fileStore{directory: directory}
}

type fileStore struct {
	lock      sync.Mutex
	directory string
	summaries map[string]*pb.Summary
	w         writer
}

// load reads the file once. A missing file is an empty store.
func (fs *fileStore) load() error {
	if fs.summaries != nil {
		return nil
	}
	r, err := openFileReader(fs.directory)
	if os.IsNotExist(err) {
		fs.summaries = map[string]*pb.Summary{}
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "unable to open summaries")
	}
	defer r.Close()

	summaries, err := readSummaries(r)
	if err != nil {
		return errors.Wrap(err, "unable to read summaries")
	}
	log.WithFields(log.Fields{
		"Directory": fs.directory,
		"Count":     len(summaries),
	}).Debug("loaded summaries")
	fs.summaries = summaries
	return nil
}

func (fs *fileStore) PutSummary(ctx context.Context, s *pb.Summary) error {
	if s == nil || s.ID == "" {
		return controller.ErrInvalidSummary
	}
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := fs.load(); err != nil {
		return err
	}
	if fs.w == nil {
		w, err := openFileWriter(fs.directory)
		if err != nil {
			return errors.Wrap(err, "unable to open summaries for writing")
		}
		fs.w = w
	}
	if err := writeLine(fs.w, s); err != nil {
		return errors.Wrapf(err, "unable to write summary %s", s.ID)
	}
	fs.summaries[s.ID] = proto.Clone(s).(*pb.Summary)
	return nil
}

func (fs *fileStore) GetSummary(ctx context.Context, id string) (*pb.Summary, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := fs.load(); err != nil {
		return nil, err
	}
	if s, ok := fs.summaries[id]; ok {
		return proto.Clone(s).(*pb.Summary), nil
	}
	return nil, controller.ErrNotFound
}

func (fs *fileStore) ListSummaries(ctx context.Context, limit int) ([]*pb.Summary, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := fs.load(); err != nil {
		return nil, err
	}
	list := make([]*pb.Summary, 0, len(fs.summaries))
	for _, s := range fs.summaries {
		list = append(list, proto.Clone(s).(*pb.Summary))
	}
	return controller.Top(list, limit), nil
}

// Close releases the file handle.
func (fs *fileStore) Close() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.w == nil {
		return nil
	}
	err := fs.w.Close()
	fs.w = nil
	return err
}
