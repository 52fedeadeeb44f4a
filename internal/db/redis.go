package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOpts configures the shared redis client. Two things live in
// redis: the per-agent API rate-limit windows and the payment
// idempotency keys.
type RedisOpts struct {
	Addr        string // "127.0.0.1:6379"
	Password    string
	DB          int
	DialTimeout time.Duration // default 5s
}

// NewRedisClient connects and pings; an unreachable redis is a startup
// error, not something to discover on the first payment.
func NewRedisClient(opts RedisOpts) (*redis.Client, error) {
	timeout := opts.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	return rdb, nil
}
