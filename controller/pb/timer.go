package pb

import "time"

// TimerKind names one of the session's timer slots.
type TimerKind int

// Timer slots, in the order they are fired when due at the same instant.
const (
	TimerPowerUpAppear TimerKind = iota
	TimerPowerUpExpire
	TimerMultiplierEnd
	TimerAnnounceHide

	NumTimers
)

var timerNames = [NumTimers]string{
	"powerup-appear",
	"powerup-expire",
	"multiplier-end",
	"announce-hide",
}

func (k TimerKind) String() string {
	if k < 0 || k >= NumTimers {
		return "unknown"
	}
	return timerNames[k]
}

// Timer is a deadline slot. A timer is armed when Due is set; Token changes
// every time it is armed so a stale callback can be told apart. Held marks a
// timer suspended by a pause, waiting to be re-armed on resume.
type Timer struct {
	Due   time.Time `json:"Due"`
	Token uint64    `json:"Token"`
	Held  bool      `json:"Held"`
}

// Armed reports whether the timer is waiting to fire.
func (t Timer) Armed() bool {
	return !t.Due.IsZero()
}
