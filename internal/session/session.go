// Package session keeps logged-in user snapshots and per-user theme
// preferences. Writes are immediate.
package session

import (
	"context"
	"errors"
	"time"

	"hotel-audit-pro/internal/users"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

var ErrInvalidTheme = errors.New("session: invalid theme")

// Session is the current-session marker. User is a snapshot taken at login;
// callers revalidate it against the user list.
type Session struct {
	ID        string     `json:"id"`
	User      users.User `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type Store interface {
	// Put stores s until s.ExpiresAt.
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, bool, error)
	Delete(ctx context.Context, id string) error
	// DeleteUser drops every session of userID and returns how many existed.
	DeleteUser(ctx context.Context, userID string) (int, error)

	Theme(ctx context.Context, userID string) (Theme, bool, error)
	SetTheme(ctx context.Context, userID string, t Theme) error
}
