package session

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
)

type Memory struct {
	clock clockwork.Clock

	mu       sync.Mutex
	sessions map[string]Session
	themes   map[string]Theme
}

func NewMemory(clock clockwork.Clock) *Memory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Memory{clock: clock, sessions: map[string]Session{}, themes: map[string]Theme{}}
}

func (m *Memory) Put(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false, nil
	}
	if !m.clock.Now().Before(s.ExpiresAt) {
		delete(m.sessions, id)
		return Session{}, false, nil
	}
	return s, true, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *Memory) DeleteUser(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.User.ID == userID {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *Memory) Theme(ctx context.Context, userID string) (Theme, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.themes[userID]
	return t, ok, nil
}

func (m *Memory) SetTheme(ctx context.Context, userID string, t Theme) error {
	if !t.Valid() {
		return ErrInvalidTheme
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[userID] = t
	return nil
}
