package filestore

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/controller/testsuite"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	text   string
	err    error
	closed bool
}

func (w *mockWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.text += s
	return len(s), nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "filestore")
	require.NoError(t, err)
	return dir
}

func useMocks(t *testing.T, existing string) *mockWriter {
	w := &mockWriter{}
	openFileWriter = func(string) (writer, error) { return w, nil }
	openFileReader = func(string) (io.ReadCloser, error) {
		if existing == "" {
			return nil, os.ErrNotExist
		}
		return ioutil.NopCloser(strings.NewReader(existing)), nil
	}
	return w
}

func restoreMocks() {
	openFileWriter = appendOnlyFileWriter
	openFileReader = fileReader
}

func TestFileStoreSuite(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	n := 0
	testsuite.Suite(t, func() controller.Store {
		n++
		return NewFileStore(filepath.Join(dir, string(rune('a'+n))))
	})
}

func TestFileStoreReload(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	ctx := context.Background()

	fs := NewFileStore(dir)
	require.NoError(t, fs.PutSummary(ctx, &pb.Summary{ID: "a", Score: 10}))
	require.NoError(t, fs.PutSummary(ctx, &pb.Summary{ID: "b", Score: 20}))
	require.NoError(t, fs.PutSummary(ctx, &pb.Summary{ID: "a", Score: 30}))
	require.NoError(t, fs.(io.Closer).Close())

	reopened := NewFileStore(dir)
	list, err := reopened.ListSummaries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a", list[0].ID)
	require.Equal(t, int64(30), list[0].Score)
}

func TestFileStoreWritesLines(t *testing.T) {
	defer restoreMocks()
	w := useMocks(t, "")

	fs := NewFileStore("unused")
	require.NoError(t, fs.PutSummary(context.Background(), &pb.Summary{ID: "a", Score: 10}))
	require.Equal(t, "{\"ID\":\"a\",\"Score\":10}\n", w.text)

	require.NoError(t, fs.(io.Closer).Close())
	require.True(t, w.closed)
}

func TestFileStoreSkipsBadLines(t *testing.T) {
	defer restoreMocks()
	useMocks(t, strings.Join([]string{
		`{"ID":"a","Score":10}`,
		`not json`,
		``,
		`{"Score":99}`,
		`{"ID":"b","Score":"high"}`,
		`{"ID":"c","Score":20}`,
	}, "\n"))

	list, err := NewFileStore("unused").ListSummaries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "c", list[0].ID)
	require.Equal(t, "a", list[1].ID)
}

func TestFileStoreWriteError(t *testing.T) {
	defer restoreMocks()
	w := useMocks(t, "")
	w.err = errors.New("fail")

	fs := NewFileStore("unused")
	err := fs.PutSummary(context.Background(), &pb.Summary{ID: "a"})
	require.Error(t, err)

	_, err = fs.GetSummary(context.Background(), "a")
	require.Equal(t, controller.ErrNotFound, err)
}

func TestFileStoreOpenErrors(t *testing.T) {
	defer restoreMocks()
	openFileReader = func(string) (io.ReadCloser, error) {
		return nil, errors.New("fail")
	}
	fs := NewFileStore("unused")
	_, err := fs.ListSummaries(context.Background(), 0)
	require.Error(t, err)

	useMocks(t, "")
	openFileWriter = func(string) (writer, error) {
		return nil, errors.New("fail")
	}
	err = NewFileStore("unused").PutSummary(context.Background(), &pb.Summary{ID: "a"})
	require.Error(t, err)
}
