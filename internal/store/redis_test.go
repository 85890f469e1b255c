package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, "test"), mr
}

func TestRedis_Contract(t *testing.T) {
	s, _ := newTestRedis(t)
	runStoreContract(t, s)
}

func TestRedis_LayoutAndLazySchema(t *testing.T) {
	s, mr := newTestRedis(t)
	ctx := context.Background()

	require.False(t, mr.Exists("test:schema"))

	require.NoError(t, ReplaceAll(ctx, s, Templates, []item{{ID: "temp-1", Name: "Daily Kitchen Opening"}}))

	v, err := mr.Get("test:schema")
	require.NoError(t, err)
	require.Equal(t, schemaVersion, v)

	require.JSONEq(t, `{"id":"temp-1","name":"Daily Kitchen Opening"}`, mr.HGet("test:templates", "temp-1"))
	order, err := mr.List("test:templates:order")
	require.NoError(t, err)
	require.Equal(t, []string{"temp-1"}, order)
}

func TestRedis_SkipsOrphanedOrderEntries(t *testing.T) {
	s, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, ReplaceAll(ctx, s, SOPs, []item{{ID: "sop-1"}, {ID: "sop-2"}}))
	mr.HDel("test:sops", "sop-1")

	got, err := LoadAll[item](ctx, s, SOPs)
	require.NoError(t, err)
	require.Equal(t, []item{{ID: "sop-2"}}, got)
}
