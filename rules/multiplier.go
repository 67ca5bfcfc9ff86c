package rules

import (
	"time"

	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

const (
	// MultiplierDuration is how long an eaten power-up triples food points.
	MultiplierDuration = 5 * time.Second
	// AnnounceDuration is how long the multiplier banner stays visible.
	AnnounceDuration = time.Second
	// MultiplierFactor scales food points while the multiplier is active.
	MultiplierFactor = 3
)

func activateMultiplier(s *pb.Session, now time.Time) {
	s.Multiplier = pb.Multiplier{Active: true, Announce: true, Started: true}
	armTimer(s, pb.TimerMultiplierEnd, now.Add(MultiplierDuration))
	armTimer(s, pb.TimerAnnounceHide, now.Add(AnnounceDuration))
	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Turn":      s.Turn,
	}).Info("multiplier active")
}

func deactivateMultiplier(s *pb.Session, now time.Time) {
	s.Multiplier.Active = false
	s.Multiplier.Announce = true
	armTimer(s, pb.TimerAnnounceHide, now.Add(AnnounceDuration))
	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Turn":      s.Turn,
	}).Info("multiplier inactive")
}

// foodPoints is the score for one food at the current multiplier.
func foodPoints(s *pb.Session) int64 {
	if s.Multiplier.Active {
		return FoodPoints * MultiplierFactor
	}
	return FoodPoints
}
