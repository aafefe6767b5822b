// Package lock provides a redis based mutual exclusion between bot instances.
package lock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KotFed0t/lot_allocator/config"
	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotAcquired = errors.New("lock not acquired")

const retryInterval = 50 * time.Millisecond

// release deletes the key only while it still holds our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisLocker(redisClient *redis.Client, cfg *config.Config) *RedisLocker {
	return &RedisLocker{redis: redisClient, cfg: cfg}
}

func Key(ticker string) string {
	return "lot_lock:" + ticker
}

// Lock waits up to Allocation.LockWait for key and returns the unlock func.
// The lock expires after Allocation.LockTTL if it is never released.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.cfg.Allocation.LockWait)
	defer cancel()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.redis.SetNX(waitCtx, key, token, l.cfg.Allocation.LockTTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			slog.Error("failed on redis.SetNX", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
			return nil, err
		}
		if ok {
			slog.Debug("lock acquired", slog.String("rqID", rqID), slog.String("key", key))
			return func() { l.unlock(key, token, rqID) }, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("lock wait timeout", slog.String("rqID", rqID), slog.String("key", key))
			return nil, ErrNotAcquired
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlock(key, token, rqID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := release.Run(ctx, l.redis, []string{key}, token).Err()
	if err != nil {
		slog.Error("failed to release lock", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return
	}
	slog.Debug("lock released", slog.String("rqID", rqID), slog.String("key", key))
}
