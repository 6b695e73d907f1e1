package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterClient is the slice of the redis API the windowed counters need.
type counterClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// bumpCounter increments a windowed counter and arms its expiry on the first
// hit. It returns the count after the increment; a failed expiry is ignored
// since the hour-stamped keys never match a later window anyway.
func bumpCounter(ctx context.Context, client counterClient, key string, window time.Duration) (int64, error) {
	n, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		_ = client.Expire(ctx, key, window).Err()
	}
	return n, nil
}
