package pb

// Snake is an ordered body of cells, head first.
type Snake struct {
	Body []*Point `json:"Body"`
}

// Move the snake 1 cell in the specified direction. Move does not remove the
// end point of the snake, that is done after checking if the snake has eaten.
func (s *Snake) Move(direction Direction, step int32) {
	h := s.Head()
	if h == nil {
		return
	}
	s.Body = append([]*Point{h.Shift(direction, step)}, s.Body...)
}

// Shrink drops the tail segment.
func (s *Snake) Shrink() {
	if len(s.Body) == 0 {
		return
	}
	s.Body = s.Body[:len(s.Body)-1]
}

// Head returns the first point in the body
func (s *Snake) Head() *Point {
	if s == nil || len(s.Body) == 0 {
		return nil
	}
	return s.Body[0]
}

// Tail returns the last point in the body
func (s *Snake) Tail() *Point {
	if s == nil || len(s.Body) == 0 {
		return nil
	}
	return s.Body[len(s.Body)-1]
}

// Len is the number of segments.
func (s *Snake) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Body)
}

// HitsBody reports whether p lies on any segment except the head.
func (s *Snake) HitsBody(p *Point) bool {
	for i, b := range s.Body {
		if i == 0 {
			continue
		}
		if b.Equal(p) {
			return true
		}
	}
	return false
}

// Clone deep copies the snake.
func (s *Snake) Clone() *Snake {
	if s == nil {
		return nil
	}
	body := make([]*Point, 0, len(s.Body))
	for _, b := range s.Body {
		body = append(body, b.Clone())
	}
	return &Snake{Body: body}
}
