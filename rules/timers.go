package rules

import (
	"sort"
	"time"

	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

// Due is an armed timer whose deadline has passed.
type Due struct {
	Kind  pb.TimerKind
	Token uint64
	At    time.Time
}

// DueTimers lists the timers due at or before now, earliest first. Timers due
// at the same instant keep slot order.
func DueTimers(s *pb.Session, now time.Time) []Due {
	due := []Due{}
	if s.Phase != pb.PhaseRunning {
		return due
	}
	for k := pb.TimerKind(0); k < pb.NumTimers; k++ {
		t := s.Timers[k]
		if t.Armed() && !t.Due.After(now) {
			due = append(due, Due{Kind: k, Token: t.Token, At: t.Due})
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].At.Before(due[j].At) })
	return due
}

// NextDeadline is the earliest tick or timer deadline of a running session.
func NextDeadline(s *pb.Session) (time.Time, bool) {
	if s.Phase != pb.PhaseRunning {
		return time.Time{}, false
	}
	next := s.NextTick
	for _, t := range s.Timers {
		if t.Armed() && (next.IsZero() || t.Due.Before(next)) {
			next = t.Due
		}
	}
	return next, !next.IsZero()
}

// FireTimer runs the transition owned by a timer slot. It is a no-op that
// returns false unless the session is running, the slot is armed with the
// same token, and the deadline has passed.
func FireTimer(s *pb.Session, kind pb.TimerKind, token uint64, now time.Time, rng Rand) bool {
	if s.Phase != pb.PhaseRunning || kind < 0 || kind >= pb.NumTimers {
		return false
	}
	t := s.Timers[kind]
	if !t.Armed() || t.Token != token || now.Before(t.Due) {
		log.WithFields(log.Fields{
			"SessionID": s.ID,
			"Timer":     kind.String(),
			"Token":     token,
		}).Debug("ignoring stale timer")
		return false
	}
	cancelTimer(s, kind)

	switch kind {
	case pb.TimerPowerUpAppear:
		spawnPowerUp(s, now, rng)
	case pb.TimerPowerUpExpire:
		expirePowerUp(s, now, rng)
	case pb.TimerMultiplierEnd:
		deactivateMultiplier(s, now)
	case pb.TimerAnnounceHide:
		s.Multiplier.Announce = false
	}
	return true
}

func armTimer(s *pb.Session, kind pb.TimerKind, due time.Time) {
	s.TimerSeq++
	s.Timers[kind] = pb.Timer{Due: due, Token: s.TimerSeq}
}

func cancelTimer(s *pb.Session, kind pb.TimerKind) {
	s.Timers[kind] = pb.Timer{}
}

func cancelAllTimers(s *pb.Session) {
	for k := range s.Timers {
		s.Timers[k] = pb.Timer{}
	}
}

// holdTimer suspends an armed timer. The remaining time is dropped; resume
// computes a fresh delay.
func holdTimer(s *pb.Session, kind pb.TimerKind) {
	if !s.Timers[kind].Armed() {
		return
	}
	s.Timers[kind] = pb.Timer{Held: true}
}

// resumeTimers re-arms every held timer with a fresh delay from now.
func resumeTimers(s *pb.Session, now time.Time, rng Rand) {
	for k := pb.TimerKind(0); k < pb.NumTimers; k++ {
		if s.Timers[k].Held {
			armTimer(s, k, now.Add(timerDelay(k, rng)))
		}
	}
}

// timerDelay is the delay a slot is armed with.
func timerDelay(kind pb.TimerKind, rng Rand) time.Duration {
	switch kind {
	case pb.TimerPowerUpAppear:
		return randomDelay(rng, PowerUpAppearMin, PowerUpAppearSpread)
	case pb.TimerPowerUpExpire:
		return randomDelay(rng, PowerUpExpireMin, PowerUpExpireSpread)
	case pb.TimerMultiplierEnd:
		return MultiplierDuration
	case pb.TimerAnnounceHide:
		return AnnounceDuration
	}
	return 0
}

// randomDelay is uniform in [min, min+spread).
func randomDelay(rng Rand, min, spread time.Duration) time.Duration {
	if spread <= 0 {
		return min
	}
	return min + time.Duration(rng.Int63n(int64(spread)))
}
