package persist

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler holds at most one pending task. Scheduling again cancels the
// previous task, so only the most recent one ever runs (trailing debounce).
type Scheduler struct {
	clock clockwork.Clock

	mu    sync.Mutex
	timer clockwork.Timer
	gen   uint64
}

func NewScheduler(clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{clock: clock}
}

// Schedule replaces any pending task with fn, to run after d.
func (s *Scheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		if gen != s.gen {
			// superseded after the timer already fired
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending task and reports whether there was one.
func (s *Scheduler) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.timer != nil
	s.stopLocked()
	s.gen++
	return pending
}

func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Scheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
