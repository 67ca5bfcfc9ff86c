package rules

import "github.com/snakefield/engine/controller/pb"

// CheckForGameOver reports whether the session has ended.
func CheckForGameOver(s *pb.Session) bool {
	return s.Phase == pb.PhaseGameOver
}

// BuildSummary records a finished session for the game over screen and the
// score stores. It returns nil for a session that has not ended.
func BuildSummary(s *pb.Session) *pb.Summary {
	if !CheckForGameOver(s) {
		return nil
	}
	sum := &pb.Summary{
		ID:          s.ID,
		Score:       s.Score,
		Length:      int32(s.Snake.Len()),
		Turns:       s.Turn,
		ControlMode: string(s.Mode),
		Width:       s.Board.Width,
		Height:      s.Board.Height,
		StartedAt:   s.StartedAt.UnixNano(),
		EndedAt:     s.EndedAt.UnixNano(),
	}
	if s.Death != nil {
		sum.Cause = s.Death.Cause
	}
	return sum
}
