package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// replaceScript swaps a collection in one atomic step.
var replaceScript = redis.NewScript(`
-- KEYS[1] = records hash (id -> json)
-- KEYS[2] = order list (ids)
-- ARGV    = id1, json1, id2, json2, ...
redis.call('DEL', KEYS[1], KEYS[2])
for i = 1, #ARGV, 2 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
  redis.call('RPUSH', KEYS[2], ARGV[i])
end
return 1
`)

const schemaVersion = "1"

// Redis keeps each collection as a hash of records plus a list holding
// their order. Settings share one hash.
type Redis struct {
	rdb    *redis.Client
	prefix string
	init   lazyInit
}

// NewRedis wraps rdb. The caller keeps ownership of the client.
func NewRedis(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "hotel-audit-pro"
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) recordsKey(c Collection) string { return r.prefix + ":" + string(c) }
func (r *Redis) orderKey(c Collection) string   { return r.prefix + ":" + string(c) + ":order" }
func (r *Redis) settingsKey() string            { return r.prefix + ":settings" }
func (r *Redis) schemaKey() string              { return r.prefix + ":schema" }

// ensureSchema stamps the schema version once; collections themselves need no DDL.
func (r *Redis) ensureSchema(ctx context.Context) error {
	return r.init.ensure(ctx, func(ctx context.Context) error {
		return r.rdb.SetNX(ctx, r.schemaKey(), schemaVersion, 0).Err()
	})
}

func (r *Redis) GetAll(ctx context.Context, c Collection) ([]Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	var (
		hashCmd  *redis.MapStringStringCmd
		orderCmd *redis.StringSliceCmd
	)
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		hashCmd = p.HGetAll(ctx, r.recordsKey(c))
		orderCmd = p.LRange(ctx, r.orderKey(c), 0, -1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: redis get %s: %w", c, err)
	}

	data := hashCmd.Val()
	out := make([]Record, 0, len(data))
	for _, id := range orderCmd.Val() {
		raw, ok := data[id]
		if !ok {
			continue
		}
		out = append(out, Record{ID: id, Data: json.RawMessage(raw)})
	}
	return out, nil
}

func (r *Redis) SaveAll(ctx context.Context, c Collection, records []Record) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	if err := checkRecords(records); err != nil {
		return err
	}
	if err := r.ensureSchema(ctx); err != nil {
		return err
	}

	args := make([]any, 0, len(records)*2)
	for _, rec := range records {
		args = append(args, rec.ID, string(rec.Data))
	}
	if err := replaceScript.Run(ctx, r.rdb, []string{r.recordsKey(c), r.orderKey(c)}, args...).Err(); err != nil {
		return fmt.Errorf("store: redis save %s: %w", c, err)
	}
	return nil
}

func (r *Redis) GetSetting(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	if err := r.ensureSchema(ctx); err != nil {
		return nil, false, err
	}
	v, err := r.rdb.HGet(ctx, r.settingsKey(), key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: redis get setting %s: %w", key, err)
	}
	return json.RawMessage(v), true, nil
}

func (r *Redis) SaveSetting(ctx context.Context, key string, value json.RawMessage) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := r.ensureSchema(ctx); err != nil {
		return err
	}
	if err := r.rdb.HSet(ctx, r.settingsKey(), key, string(value)).Err(); err != nil {
		return fmt.Errorf("store: redis save setting %s: %w", key, err)
	}
	return nil
}
