package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig describes the client shared by the redis object store and the
// session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// PoolSize defaults to 10. The process holds one writer per collection
	// plus session traffic, so a small pool is enough.
	PoolSize int
	// Timeout bounds dial, read, write and the startup ping. Defaults to 3s.
	Timeout time.Duration
}

func (c RedisConfig) options() (*redis.Options, error) {
	if c.Addr == "" {
		return nil, errors.New("redis addr is required")
	}
	if c.DB < 0 {
		return nil, fmt.Errorf("redis db must be >= 0, got %d", c.DB)
	}
	pool := c.PoolSize
	if pool <= 0 {
		pool = 10
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &redis.Options{
		Addr:            c.Addr,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        pool,
		DialTimeout:     timeout,
		ReadTimeout:     timeout,
		WriteTimeout:    timeout,
		PoolTimeout:     timeout + time.Second,
		ConnMaxIdleTime: 5 * time.Minute,
	}, nil
}

// OpenRedis builds a client and pings it. The caller owns the client and
// closes it on shutdown.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}
