package auth

import (
	"context"
	"errors"

	"hotel-audit-pro/internal/users"
)

type ctxKey int

const ctxIdentity ctxKey = iota

// Identity is the authenticated caller: the session and the current
// version of its user.
type Identity struct {
	SessionID string
	User      users.User
}

var errNoIdentity = errors.New("identity not in context")

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

func FromContext(ctx context.Context) (Identity, error) {
	if id, ok := ctx.Value(ctxIdentity).(Identity); ok && id.User.ID != "" {
		return id, nil
	}
	return Identity{}, errNoIdentity
}

func UserID(ctx context.Context) (string, error) {
	id, err := FromContext(ctx)
	return id.User.ID, err
}

func Role(ctx context.Context) (string, error) {
	id, err := FromContext(ctx)
	if err != nil {
		return "", err
	}
	return string(id.User.Role), nil
}
