// Package e2e drives a served session through the public api, the way the
// terminal watcher and browser views do.
package e2e

import (
	"time"

	"github.com/pkg/errors"
	"github.com/snakefield/engine/api"
	"github.com/snakefield/engine/controller/pb"
)

// errTimeout is returned when a frame never matches.
var errTimeout = errors.New("timed out waiting for frame")

// waitForFrame polls the session until match accepts a frame.
func waitForFrame(c *api.Client, timeout time.Duration, match func(*pb.Frame) bool) (*pb.Frame, error) {
	deadline := time.Now().Add(timeout)
	for {
		f, err := c.Frame()
		if err != nil {
			return nil, err
		}
		if match(f) {
			return f, nil
		}
		if time.Now().After(deadline) {
			return f, errTimeout
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func inPhase(p pb.Phase) func(*pb.Frame) bool {
	return func(f *pb.Frame) bool { return f.Phase == p }
}
