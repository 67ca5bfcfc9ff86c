package rules

import (
	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

// ChangeDirection requests a new direction for the next tick. The request is
// rejected when it reverses the heading applied by the last tick, and when the
// session has no live snake (waiting or game over).
func ChangeDirection(s *pb.Session, d pb.Direction) bool {
	if !d.Valid() {
		return false
	}
	if s.Phase != pb.PhaseRunning && s.Phase != pb.PhasePaused {
		return false
	}
	if d == s.Heading.Opposite() {
		log.WithFields(log.Fields{
			"SessionID": s.ID,
			"Heading":   s.Heading,
			"Requested": d,
		}).Debug("rejecting reverse direction")
		return false
	}
	s.Direction = d
	return true
}
