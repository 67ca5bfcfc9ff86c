package rules

import (
	"time"

	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

// TogglePause switches a session between running and paused. Pausing holds
// the tick and every pending timer and hides the multiplier banner; resuming
// re-arms held timers with fresh delays. Returns false in any other phase.
func TogglePause(s *pb.Session, now time.Time, rng Rand) bool {
	switch s.Phase {
	case pb.PhaseRunning:
		s.Phase = pb.PhasePaused
		s.NextTick = time.Time{}
		holdTimer(s, pb.TimerPowerUpAppear)
		holdTimer(s, pb.TimerPowerUpExpire)
		if s.Multiplier.Active {
			holdTimer(s, pb.TimerMultiplierEnd)
		} else {
			cancelTimer(s, pb.TimerMultiplierEnd)
		}
		cancelTimer(s, pb.TimerAnnounceHide)
		s.Multiplier.Announce = false
	case pb.PhasePaused:
		s.Phase = pb.PhaseRunning
		s.NextTick = now.Add(s.TickInterval)
		resumeTimers(s, now, rng)
	default:
		return false
	}

	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Turn":      s.Turn,
		"Phase":     s.Phase,
	}).Info("pause toggled")
	return true
}

// EndSession moves a session to game over. Score and snake are frozen for
// display, every timer is cancelled and the multiplier is switched off.
func EndSession(s *pb.Session, death *pb.Death, now time.Time) {
	if s.Phase == pb.PhaseGameOver {
		return
	}
	s.Phase = pb.PhaseGameOver
	s.Death = death
	s.EndedAt = now
	s.NextTick = time.Time{}
	cancelAllTimers(s)
	s.Multiplier.Active = false
	s.Multiplier.Announce = false

	fields := log.Fields{
		"SessionID": s.ID,
		"Turn":      s.Turn,
		"Score":     s.Score,
		"Length":    s.Snake.Len(),
	}
	if death != nil {
		fields["Cause"] = death.Cause
	}
	log.WithFields(fields).Info("game over")
}

// Resize changes the board. Entities already placed stay where they are; the
// next wall check uses the new size. A waiting session is initialised as soon
// as the board becomes playable. Returns true when the session was
// initialised by this call.
func Resize(s *pb.Session, width, height int32, now time.Time, rng Rand) bool {
	s.Board.Width = width
	s.Board.Height = height
	if s.Phase != pb.PhaseWaiting {
		return false
	}
	if err := initialize(s, now, rng); err != nil {
		log.WithError(err).
			WithFields(log.Fields{"SessionID": s.ID, "Width": width, "Height": height}).
			Debug("board still not playable")
		return false
	}
	return true
}
