package commands

import (
	"sync"

	"github.com/snakefield/engine/controller/pb"
)

// frameHolder keeps the newest frame received from a session.
type frameHolder struct {
	sync.RWMutex
	frame *pb.Frame
	count int
	ffc   chan *pb.Frame
}

func (fh *frameHolder) set(frame *pb.Frame) {
	fh.Lock()
	defer fh.Unlock()

	if fh.count == 0 {
		if fh.ffc == nil {
			fh.ffc = make(chan *pb.Frame, 1)
		}
		fh.ffc <- frame
		close(fh.ffc)
	}

	fh.frame = frame
	fh.count++
}

func (fh *frameHolder) latest() *pb.Frame {
	fh.RLock()
	defer fh.RUnlock()
	return fh.frame
}

func (fh *frameHolder) initialFrame() <-chan *pb.Frame {
	fh.Lock()
	defer fh.Unlock()
	if fh.ffc == nil {
		fh.ffc = make(chan *pb.Frame, 1)
	}
	return fh.ffc
}

func (fh *frameHolder) received() int {
	fh.RLock()
	defer fh.RUnlock()
	return fh.count
}
