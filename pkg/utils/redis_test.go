package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rdb.Close()

	if err := rdb.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Fatalf("expected v, got %q", got)
	}
}

func TestOpenRedis_RequiresAddr(t *testing.T) {
	if _, err := OpenRedis(context.Background(), RedisConfig{}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestOpenRedis_PasswordAndDB(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	if _, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr()}); err == nil {
		t.Fatalf("expected auth failure without password")
	}

	rdb, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr(), Password: "s3cret", DB: 2})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rdb.Close()

	if err := rdb.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.DB(2).Get("k"); got != "v" {
		t.Fatalf("expected key in db 2, got %q", got)
	}
}

func TestOpenRedis_RejectsNegativeDB(t *testing.T) {
	if _, err := OpenRedis(context.Background(), RedisConfig{Addr: "localhost:6379", DB: -1}); err == nil {
		t.Fatalf("expected error for negative db")
	}
}
