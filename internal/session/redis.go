package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// Redis keeps sessions as JSON strings with a TTL and indexes them per user
// in a set so a user's sessions can be revoked together.
type Redis struct {
	rdb    *redis.Client
	prefix string
	clock  clockwork.Clock
}

func NewRedis(rdb *redis.Client, prefix string, clock clockwork.Clock) *Redis {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Redis{rdb: rdb, prefix: prefix, clock: clock}
}

func (r *Redis) sessionKey(id string) string { return fmt.Sprintf("%s:session:%s", r.prefix, id) }
func (r *Redis) userKey(userID string) string {
	return fmt.Sprintf("%s:user-sessions:%s", r.prefix, userID)
}
func (r *Redis) themeKey(userID string) string { return fmt.Sprintf("%s:theme:%s", r.prefix, userID) }

func (r *Redis) Put(ctx context.Context, s Session) error {
	ttl := s.ExpiresAt.Sub(r.clock.Now())
	if ttl <= 0 {
		return errors.New("session: already expired")
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.sessionKey(s.ID), raw, ttl)
		p.SAdd(ctx, r.userKey(s.User.ID), s.ID)
		p.Expire(ctx, r.userKey(s.User.ID), ttl)
		return nil
	})
	return err
}

func (r *Redis) Get(ctx context.Context, id string) (Session, bool, error) {
	raw, err := r.rdb.Get(ctx, r.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, false, fmt.Errorf("session: decode %s: %w", id, err)
	}
	return s, true, nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	s, ok, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, r.sessionKey(id))
		if ok {
			p.SRem(ctx, r.userKey(s.User.ID), id)
		}
		return nil
	})
	return err
}

func (r *Redis) DeleteUser(ctx context.Context, userID string) (int, error) {
	ids, err := r.rdb.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, r.sessionKey(id))
	}
	keys = append(keys, r.userKey(userID))

	// the set may list sessions that already expired
	n, err := r.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		n-- // the index set itself
	}
	return int(n), nil
}

func (r *Redis) Theme(ctx context.Context, userID string) (Theme, bool, error) {
	v, err := r.rdb.Get(ctx, r.themeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return Theme(v), true, nil
}

func (r *Redis) SetTheme(ctx context.Context, userID string, t Theme) error {
	if !t.Valid() {
		return ErrInvalidTheme
	}
	return r.rdb.Set(ctx, r.themeKey(userID), string(t), 0).Err()
}
