package pb

import "time"

// Phase is the state of a session.
type Phase string

const (
	// PhaseWaiting is a session that could not be initialised because the
	// board is too small. It leaves this phase on the first valid resize.
	PhaseWaiting Phase = "waiting"
	// PhaseRunning ticks the snake and all timers.
	PhaseRunning Phase = "running"
	// PhasePaused holds the tick and every pending timer.
	PhasePaused Phase = "paused"
	// PhaseGameOver is terminal until restart.
	PhaseGameOver Phase = "game-over"
)

// PowerUpState is the lifecycle position of the power-up.
type PowerUpState string

const (
	// PowerUpAbsent is the state before a session schedules its first power-up.
	PowerUpAbsent PowerUpState = "absent"
	// PowerUpPending waits for the appear timer.
	PowerUpPending PowerUpState = "pending"
	// PowerUpPresent is on the board until eaten or expired.
	PowerUpPresent PowerUpState = "present"
)

// ControlMode tells view collaborators which input surface is active.
type ControlMode string

const (
	// ControlPC is keyboard control.
	ControlPC ControlMode = "PC"
	// ControlPhone is on-screen buttons with tap-to-pause.
	ControlPhone ControlMode = "Phone"
)

// PauseMessageKey selects the pause banner for the control mode.
func (m ControlMode) PauseMessageKey() string {
	if m == ControlPhone {
		return "pause-phone"
	}
	return "pause-pc"
}

// Board is the full board rectangle, in the same units as points.
type Board struct {
	Width    int32 `json:"Width"`
	Height   int32 `json:"Height"`
	CellSize int32 `json:"CellSize"`
}

// Tuning controls how the tick interval shrinks as the snake eats.
type Tuning struct {
	StartInterval time.Duration `json:"StartInterval"`
	IntervalStep  time.Duration `json:"IntervalStep"`
	IntervalFloor time.Duration `json:"IntervalFloor"`
}

// Multiplier is the score multiplier granted by a power-up. Announce is the
// banner flag and expires independently of Active.
type Multiplier struct {
	Active   bool `json:"Active"`
	Announce bool `json:"Announce"`
	Started  bool `json:"Started"`
}

// Death records why and when a session ended.
type Death struct {
	Turn  int64  `json:"Turn"`
	Cause string `json:"Cause"`
}

// Session is the complete state of one game, from creation to game over.
// Everything the rules read or write lives here.
type Session struct {
	ID    string      `json:"ID"`
	Board Board       `json:"Board"`
	Mode  ControlMode `json:"Mode"`
	Phase Phase       `json:"Phase"`

	Snake *Snake `json:"Snake"`
	// Direction is the requested direction for the next tick, Heading the one
	// applied by the last tick.
	Direction Direction `json:"Direction"`
	Heading   Direction `json:"Heading"`

	Food         *Point       `json:"Food"`
	PowerUp      *Point       `json:"PowerUp"`
	PowerUpState PowerUpState `json:"PowerUpState"`
	Multiplier   Multiplier   `json:"Multiplier"`

	Score        int64         `json:"Score"`
	Turn         int64         `json:"Turn"`
	Tuning       Tuning        `json:"Tuning"`
	TickInterval time.Duration `json:"TickInterval"`
	NextTick     time.Time     `json:"NextTick"`

	Timers   [NumTimers]Timer `json:"Timers"`
	TimerSeq uint64           `json:"TimerSeq"`

	Death     *Death    `json:"Death"`
	StartedAt time.Time `json:"StartedAt"`
	EndedAt   time.Time `json:"EndedAt"`
}

// Frame returns a snapshot of the session for views. The frame shares no
// memory with the session.
func (s *Session) Frame() *Frame {
	f := &Frame{
		SessionID:          s.ID,
		Turn:               s.Turn,
		Phase:              s.Phase,
		Width:              s.Board.Width,
		Height:             s.Board.Height,
		CellSize:           s.Board.CellSize,
		Direction:          s.Direction,
		Food:               s.Food.Clone(),
		PowerUp:            s.PowerUp.Clone(),
		Score:              s.Score,
		TickIntervalMS:     int64(s.TickInterval / time.Millisecond),
		MultiplierActive:   s.Multiplier.Active,
		MultiplierAnnounce: s.Multiplier.Announce,
		MultiplierStarted:  s.Multiplier.Started,
		ControlMode:        s.Mode,
	}
	if s.Snake != nil {
		f.Snake = make([]Point, 0, len(s.Snake.Body))
		for _, b := range s.Snake.Body {
			f.Snake = append(f.Snake, *b)
		}
	}
	if s.Phase == PhasePaused {
		f.PauseMessage = s.Mode.PauseMessageKey()
	}
	if s.Death != nil {
		d := *s.Death
		f.Death = &d
	}
	return f
}
