package rules

import (
	"time"

	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

// Power-up lifecycle delays. Appearance is uniform in [15s, 20s), the
// power-up then stays for a uniform [5s, 10s) unless eaten.
const (
	PowerUpAppearMin    = 15 * time.Second
	PowerUpAppearSpread = 5 * time.Second
	PowerUpExpireMin    = 5 * time.Second
	PowerUpExpireSpread = 5 * time.Second
)

// schedulePowerUp enters the pending state and arms the appear timer. It is
// the single transition used at session start and after consume or expiry.
func schedulePowerUp(s *pb.Session, now time.Time, rng Rand) {
	s.PowerUp = nil
	s.PowerUpState = pb.PowerUpPending
	armTimer(s, pb.TimerPowerUpAppear, now.Add(timerDelay(pb.TimerPowerUpAppear, rng)))
}

func spawnPowerUp(s *pb.Session, now time.Time, rng Rand) {
	p, err := PlaceItem(rng, s.Board, s.Food)
	if err != nil {
		log.WithError(err).
			WithField("SessionID", s.ID).
			Warn("unable to place power-up, rescheduling")
		schedulePowerUp(s, now, rng)
		return
	}
	s.PowerUp = p
	s.PowerUpState = pb.PowerUpPresent
	armTimer(s, pb.TimerPowerUpExpire, now.Add(timerDelay(pb.TimerPowerUpExpire, rng)))
	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Turn":      s.Turn,
		"PowerUp":   p,
	}).Info("power-up appeared")
}

func expirePowerUp(s *pb.Session, now time.Time, rng Rand) {
	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Turn":      s.Turn,
		"PowerUp":   s.PowerUp,
	}).Info("power-up expired")
	schedulePowerUp(s, now, rng)
}

// consumePowerUp runs when the head lands on the power-up.
func consumePowerUp(s *pb.Session, now time.Time, rng Rand) {
	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Turn":      s.Turn,
		"PowerUp":   s.PowerUp,
	}).Info("power-up eaten")
	cancelTimer(s, pb.TimerPowerUpExpire)
	schedulePowerUp(s, now, rng)
	activateMultiplier(s, now)
}
