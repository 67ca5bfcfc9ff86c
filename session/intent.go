package session

import (
	"errors"

	"github.com/snakefield/engine/controller/pb"
)

// IntentType names an input to the session.
type IntentType string

const (
	IntentDirection IntentType = "direction"
	IntentPause     IntentType = "pause"
	IntentRestart   IntentType = "restart"
	IntentResize    IntentType = "resize"
	IntentMode      IntentType = "mode"
)

// ErrInvalidIntent is returned for an intent that can never apply.
var ErrInvalidIntent = errors.New("session: invalid intent")

// Intent is one input from a view: a key press, a tap, a window resize.
type Intent struct {
	Type      IntentType     `json:"type"`
	Direction pb.Direction   `json:"direction,omitempty"`
	Width     int32          `json:"width,omitempty"`
	Height    int32          `json:"height,omitempty"`
	Mode      pb.ControlMode `json:"mode,omitempty"`
}

// Validate checks the intent is well formed. It says nothing about whether the
// session will accept it.
func (i Intent) Validate() error {
	switch i.Type {
	case IntentDirection:
		if !i.Direction.Valid() {
			return ErrInvalidIntent
		}
	case IntentPause, IntentRestart:
	case IntentResize:
		if i.Width <= 0 || i.Height <= 0 {
			return ErrInvalidIntent
		}
	case IntentMode:
		if i.Mode != pb.ControlPC && i.Mode != pb.ControlPhone {
			return ErrInvalidIntent
		}
	default:
		return ErrInvalidIntent
	}
	return nil
}
