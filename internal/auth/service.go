package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/session"
	"hotel-audit-pro/internal/users"
	"hotel-audit-pro/pkg/logger"
)

// UserSource returns the current user list. It is the single source of truth
// for login and session revalidation.
type UserSource interface {
	Users() []users.User
}

type Service struct {
	tokens   *Manager
	sessions session.Store
	people   UserSource
	clock    clockwork.Clock
}

func NewService(tokens *Manager, sessions session.Store, people UserSource, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{tokens: tokens, sessions: sessions, people: people, clock: clock}
}

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      users.User    `json:"user"`
	Theme     session.Theme `json:"theme,omitempty"`
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := users.Authenticate(s.people.Users(), email, password)
	switch {
	case errors.Is(err, users.ErrAccountOnHold):
		return LoginResult{}, apperror.NewForbidden("Your account is on hold.")
	case err != nil:
		return LoginResult{}, apperror.NewUnauthorized("Invalid email or password.")
	}

	now := s.clock.Now()
	sid := uuid.NewString()
	token, exp, err := s.tokens.Issue(now, sid, u.ID, string(u.Role))
	if err != nil {
		return LoginResult{}, apperror.NewInternal(err)
	}
	snap := u.Public()
	if err := s.sessions.Put(ctx, session.Session{ID: sid, User: snap, CreatedAt: now, ExpiresAt: exp}); err != nil {
		return LoginResult{}, apperror.NewInternal(err)
	}

	out := LoginResult{Token: token, ExpiresAt: exp, User: snap}
	if th, ok, err := s.sessions.Theme(ctx, u.ID); err == nil && ok {
		out.Theme = th
	}
	logger.From(ctx).Info("login", "user_id", u.ID, "session_id", sid)
	return out, nil
}

// Authenticate resolves a bearer token to an identity. The session must still
// exist and its user must still exist and be active; otherwise the session
// is dropped.
func (s *Service) Authenticate(ctx context.Context, token string) (Identity, error) {
	claims, err := s.tokens.Verify(token, s.clock.Now())
	if err != nil {
		return Identity{}, apperror.NewUnauthorized("invalid token")
	}
	sess, ok, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return Identity{}, apperror.NewInternal(err)
	}
	if !ok || sess.User.ID != claims.UserID {
		return Identity{}, apperror.NewUnauthorized("session expired")
	}

	u, found := users.Find(s.people.Users(), sess.User.ID)
	if !found || !u.Active() {
		if err := s.sessions.Delete(ctx, sess.ID); err != nil {
			logger.From(ctx).Warn("session cleanup failed", "session_id", sess.ID, "err", err)
		}
		return Identity{}, apperror.NewUnauthorized("session expired")
	}
	return Identity{SessionID: sess.ID, User: u.Public()}, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *Service) Theme(ctx context.Context, userID string) (session.Theme, error) {
	th, ok, err := s.sessions.Theme(ctx, userID)
	if err != nil {
		return "", apperror.NewInternal(err)
	}
	if !ok {
		return session.ThemeSystem, nil
	}
	return th, nil
}

func (s *Service) SetTheme(ctx context.Context, userID string, th session.Theme) error {
	err := s.sessions.SetTheme(ctx, userID, th)
	if errors.Is(err, session.ErrInvalidTheme) {
		return apperror.NewValidation("theme must be one of light, dark, system")
	}
	if err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}
