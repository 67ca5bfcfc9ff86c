package pb

// Frame is what views render: a read-only copy of a session at one instant.
type Frame struct {
	SessionID string `json:"SessionID"`
	Turn      int64  `json:"Turn"`
	Phase     Phase  `json:"Phase"`

	Width    int32 `json:"Width"`
	Height   int32 `json:"Height"`
	CellSize int32 `json:"CellSize"`

	Snake     []Point   `json:"Snake"`
	Direction Direction `json:"Direction"`
	Food      *Point    `json:"Food"`
	PowerUp   *Point    `json:"PowerUp"`

	Score          int64 `json:"Score"`
	TickIntervalMS int64 `json:"TickIntervalMS"`

	MultiplierActive   bool `json:"MultiplierActive"`
	MultiplierAnnounce bool `json:"MultiplierAnnounce"`
	MultiplierStarted  bool `json:"MultiplierStarted"`

	ControlMode  ControlMode `json:"ControlMode"`
	PauseMessage string      `json:"PauseMessage,omitempty"`
	Death        *Death      `json:"Death,omitempty"`
}

// Head returns the first snake cell, or nil for an empty snake.
func (f *Frame) Head() *Point {
	if len(f.Snake) == 0 {
		return nil
	}
	p := f.Snake[0]
	return &p
}

// MultiplierMessage is the banner text while the announcement is visible.
func (f *Frame) MultiplierMessage() string {
	if !f.MultiplierStarted || !f.MultiplierAnnounce {
		return ""
	}
	if f.MultiplierActive {
		return "x3 Score is Active"
	}
	return "x3 Score is Inactive"
}
