package filestore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

var openFileReader = fileReader

var errSkipLine = errors.New("filestore: unreadable line")

func fileReader(directory string) (io.ReadCloser, error) {
	return os.Open(getFilePath(directory))
}

func readLine(r *bufio.Reader, out interface{}) (bool, error) {
	line, err := r.ReadBytes('\n')
	eof := err == io.EOF

	if err != nil && !eof {
		return false, err
	}
	if len(bytes.TrimSpace(line)) == 0 {
		return !eof, errSkipLine
	}
	if err = json.Unmarshal(line, out); err != nil {
		log.WithError(err).Warn("skipping unreadable summary line")
		return !eof, errSkipLine
	}
	return !eof, nil
}

// readSummaries loads every summary in the file. Later lines replace earlier
// ones with the same ID. Lines that fail to decode are skipped.
func readSummaries(r io.Reader) (map[string]*pb.Summary, error) {
	reader := bufio.NewReader(r)
	summaries := map[string]*pb.Summary{}

	for more := true; more; {
		s := &pb.Summary{}
		var err error
		more, err = readLine(reader, s)
		if err == errSkipLine {
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.ID == "" {
			continue
		}
		summaries[s.ID] = s
	}
	return summaries, nil
}
