package rules

import "github.com/snakefield/engine/controller/pb"

// checkForDeath looks at the snake after it has moved and reports a wall or
// self collision. The wall is the edge of the full board, not the margin.
func checkForDeath(s *pb.Session) *pb.Death {
	head := s.Snake.Head()
	if head == nil {
		return nil
	}
	if deathByOutOfBounds(head, s.Board) {
		return &pb.Death{Turn: s.Turn, Cause: DeathCauseWallCollision}
	}
	if deathBySelfCollision(s.Snake) {
		return &pb.Death{Turn: s.Turn, Cause: DeathCauseSnakeSelfCollision}
	}
	return nil
}

func deathByOutOfBounds(head *pb.Point, board pb.Board) bool {
	return !InBounds(board, head)
}

func deathBySelfCollision(snake *pb.Snake) bool {
	return snake.HitsBody(snake.Head())
}
