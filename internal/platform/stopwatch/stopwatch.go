// Package stopwatch implements the session clock used while logging a live
// match. It is a count-up clock the coach can pause, nudge and reset; the
// elapsed time is only a suggestion for the minute field, never authoritative.
package stopwatch

import (
	"sync"
	"time"
)

// Stopwatch is a pausable count-up clock, safe for concurrent use.
type Stopwatch struct {
	mu        sync.Mutex
	now       func() time.Time
	running   bool
	base      time.Duration
	startedAt time.Time
}

func New() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// NewAt builds a stopwatch with an injectable clock, for tests.
func NewAt(now func() time.Time) *Stopwatch {
	return &Stopwatch{now: now}
}

// Elapsed returns the accumulated running time.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Stopwatch) elapsedLocked() time.Duration {
	if !s.running {
		return s.base
	}
	return s.base + s.now().Sub(s.startedAt)
}

// Running reports whether the clock is currently counting.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Toggle flips between running and paused and reports the new state.
func (s *Stopwatch) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.base = s.elapsedLocked()
		s.running = false
	} else {
		s.startedAt = s.now()
		s.running = true
	}
	return s.running
}

// Reset stops the clock and returns it to zero.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.base = 0
}

// Adjust shifts the elapsed time by delta. The clock never goes negative;
// subtracting past zero leaves it at zero, whether running or paused.
func (s *Stopwatch) Adjust(delta time.Duration) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := s.elapsedLocked() + delta
	if elapsed < 0 {
		elapsed = 0
	}
	if s.running {
		s.startedAt = s.now()
	}
	s.base = elapsed
	return elapsed
}

// Minute returns the whole minutes elapsed, for prefilling the minute field.
func (s *Stopwatch) Minute() int {
	return int(s.Elapsed() / time.Minute)
}

// Second returns the seconds part within the current minute.
func (s *Stopwatch) Second() int {
	return int(s.Elapsed()/time.Second) % 60
}
