package appstate

import (
	"context"
	"strings"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/users"
)

var errUserNotFound = apperror.NewNotFound("User not found.")

// UserChange reports the outcome of a user mutation. LoggedOut is true when
// the caller's own session was ended by it.
type UserChange struct {
	User      users.User `json:"user"`
	LoggedOut bool       `json:"logged_out"`
}

// PublicUsers lists users without passwords.
func (a *App) PublicUsers() []users.User {
	list := a.Users()
	out := make([]users.User, 0, len(list))
	for _, u := range list {
		out = append(out, u.Public())
	}
	return out
}

func (a *App) AddUser(ctx context.Context, in users.Input) (users.User, error) {
	if err := a.lock(); err != nil {
		return users.User{}, err
	}
	defer a.mu.Unlock()

	list := a.Users()
	if err := checkEmail(list, "", in.Email); err != nil {
		return users.User{}, err
	}
	u, err := users.Build(a.newID("u"), in)
	if err != nil {
		return users.User{}, err
	}
	out := make([]users.User, 0, len(list)+1)
	a.users.Set(append(append(out, list...), u))
	return u.Public(), nil
}

func (a *App) UpdateUser(ctx context.Context, id string, in users.Input) (users.User, error) {
	if err := a.lock(); err != nil {
		return users.User{}, err
	}
	defer a.mu.Unlock()

	list := a.Users()
	cur, ok := users.Find(list, id)
	if !ok {
		return users.User{}, errUserNotFound
	}
	if err := checkEmail(list, id, in.Email); err != nil {
		return users.User{}, err
	}
	next, err := users.Apply(cur, in)
	if err != nil {
		return users.User{}, err
	}
	out, _ := replaceByID(list, next)
	a.users.Set(out)
	return next.Public(), nil
}

// DeleteUser removes a user and ends all of their sessions.
func (a *App) DeleteUser(ctx context.Context, id, actorID string) (UserChange, error) {
	if err := a.lock(); err != nil {
		return UserChange{}, err
	}
	list := a.Users()
	cur, ok := users.Find(list, id)
	if !ok {
		a.mu.Unlock()
		return UserChange{}, errUserNotFound
	}
	out, _ := removeByID(list, id)
	a.users.Set(out)
	a.mu.Unlock()

	return a.afterUserLockout(ctx, cur, actorID)
}

// ToggleUserStatus flips active/on-hold. Putting a user on hold ends their sessions.
func (a *App) ToggleUserStatus(ctx context.Context, id, actorID string) (UserChange, error) {
	if err := a.lock(); err != nil {
		return UserChange{}, err
	}
	list := a.Users()
	cur, ok := users.Find(list, id)
	if !ok {
		a.mu.Unlock()
		return UserChange{}, errUserNotFound
	}
	next := users.ToggleStatus(cur)
	out, _ := replaceByID(list, next)
	a.users.Set(out)
	a.mu.Unlock()

	if next.Active() {
		return UserChange{User: next.Public()}, nil
	}
	return a.afterUserLockout(ctx, next, actorID)
}

func (a *App) afterUserLockout(ctx context.Context, u users.User, actorID string) (UserChange, error) {
	res := UserChange{User: u.Public(), LoggedOut: u.ID == actorID}
	if a.sessions == nil {
		return res, nil
	}
	n, err := a.sessions.DeleteUser(ctx, u.ID)
	if err != nil {
		// sessions are revalidated against the user list on every request
		a.log.Warn("session revoke failed", "user_id", u.ID, "err", err)
		return res, nil
	}
	if n > 0 {
		a.log.Info("sessions revoked", "user_id", u.ID, "count", n)
	}
	return res, nil
}

func checkEmail(list []users.User, selfID, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if u, ok := users.FindByEmail(list, email); ok && u.ID != selfID {
		return apperror.NewValidation("Email is already in use.")
	}
	return nil
}
