package worker

import "time"

// steppedClock only moves when the worker moves it.
type steppedClock struct {
	now time.Time
}

func (s *steppedClock) Now() time.Time { return s.now }

func (s *steppedClock) After(d time.Duration) <-chan time.Time {
	s.now = s.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- s.now
	return ch
}
