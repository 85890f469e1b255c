// Package persist keeps in-memory values in sync with the object store:
// hydrate once on start, then write back the latest value after a quiet period.
package persist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type Options struct {
	// Debounce is the quiet period between the last change and the write.
	Debounce time.Duration
	// SavingHold keeps Saving() true for this long after a write settles.
	SavingHold time.Duration
	// WriteTimeout bounds one write.
	WriteTimeout time.Duration
	Clock        clockwork.Clock
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	out := o
	if out.Debounce <= 0 {
		out.Debounce = 800 * time.Millisecond
	}
	if out.SavingHold <= 0 {
		out.SavingHold = 500 * time.Millisecond
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = 10 * time.Second
	}
	if out.Clock == nil {
		out.Clock = clockwork.NewRealClock()
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return out
}

// State is one value bound to the store.
//
// Invariants:
//   - Nothing is written before hydration settles.
//   - At most one write is pending; writes of one State never overlap.
//   - Write failures are logged and dropped.
type State[T any] struct {
	binding  Binding[T]
	opts     Options
	log      *slog.Logger
	debounce *Scheduler

	hydrateMu sync.Mutex
	writeMu   sync.Mutex

	mu        sync.Mutex
	value     T
	version   uint64
	written   uint64
	loaded    bool
	saving    bool
	holdGen   uint64
	holdTimer clockwork.Timer
}

// New returns a State holding seed until hydration replaces it.
func New[T any](binding Binding[T], seed T, opts Options) *State[T] {
	opts = opts.withDefaults()
	return &State[T]{
		binding:  binding,
		opts:     opts,
		log:      opts.Logger.With("collection", binding.Name()),
		debounce: NewScheduler(opts.Clock),
		value:    seed,
	}
}

func (s *State[T]) Name() string { return s.binding.Name() }

// Hydrate loads the stored value once. A stored value replaces the seed;
// when nothing is stored the seed is kept and scheduled for write-back.
// Read errors are logged and the seed kept; the state still counts as loaded.
// Only context errors are returned.
func (s *State[T]) Hydrate(ctx context.Context) error {
	s.hydrateMu.Lock()
	defer s.hydrateMu.Unlock()

	if s.Loaded() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	v, found, err := s.binding.Load(ctx)

	s.mu.Lock()
	persistSeed := false
	switch {
	case err != nil:
		s.log.Error("hydrate failed, keeping defaults", "err", err)
	case found:
		s.value = v
		s.written = s.version
	default:
		s.version++
		persistSeed = true
	}
	s.loaded = true
	s.mu.Unlock()

	if persistSeed {
		s.log.Debug("no stored data, persisting seed")
		s.debounce.Schedule(s.opts.Debounce, s.writeFromTimer)
	}
	return nil
}

func (s *State[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Saving is true while a write is in flight and for SavingHold after it.
func (s *State[T]) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Get returns the current value. Callers must not mutate shared backing
// arrays; replace through Set or Update instead.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value and, once loaded, schedules a write.
func (s *State[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update applies fn atomically and returns the new value.
func (s *State[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	s.value = fn(s.value)
	s.version++
	v, loaded := s.value, s.loaded
	s.mu.Unlock()

	if loaded {
		s.debounce.Schedule(s.opts.Debounce, s.writeFromTimer)
	}
	return v
}

// Flush cancels the pending timer and writes the latest value now if it
// has not been written yet.
func (s *State[T]) Flush(ctx context.Context) {
	s.debounce.Cancel()
	if !s.Loaded() {
		return
	}
	s.write(ctx)
}

func (s *State[T]) writeFromTimer() {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.WriteTimeout)
	defer cancel()
	s.write(ctx)
}

func (s *State[T]) write(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.version == s.written {
		s.mu.Unlock()
		return
	}
	v, ver := s.value, s.version
	s.beginSavingLocked()
	s.mu.Unlock()

	err := s.binding.Save(ctx, v)

	s.mu.Lock()
	// a failed write is dropped, not retried
	s.written = ver
	s.endSavingLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Error("write-back failed", "err", err)
		return
	}
	s.log.Debug("write-back done")
}

func (s *State[T]) beginSavingLocked() {
	s.holdGen++
	if s.holdTimer != nil {
		s.holdTimer.Stop()
		s.holdTimer = nil
	}
	s.saving = true
}

func (s *State[T]) endSavingLocked() {
	gen := s.holdGen
	s.holdTimer = s.opts.Clock.AfterFunc(s.opts.SavingHold, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.holdGen {
			return
		}
		s.saving = false
		s.holdTimer = nil
	})
}
