package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
)

const (
	redisKeyPrefix = "manancial:lock:"
	retryBackoff   = 50 * time.Millisecond
)

// RedisLocker is a Locker shared by every instance talking to the same Redis.
type RedisLocker struct {
	client     *redislock.Client
	ttl        time.Duration
	maxRetries int
}

// NewRedisLocker creates a RedisLocker. Locks expire after ttl if the holder dies;
// waiting for a busy key gives up after roughly ttl as well.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{
		client:     redislock.New(rdb),
		ttl:        ttl,
		maxRetries: int(ttl / retryBackoff),
	}
}

var _ portsrepo.Locker = (*RedisLocker)(nil)

// Lock obtains every key in sorted order. A key still busy after the retries
// fails with a 503 AppError and the keys already held are released.
func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = sortedUnique(keys)
	held := make([]*redislock.Lock, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			if err := held[i].Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				slog.Warn("Failed to release redis lock", slog.String("key", held[i].Key()), slog.String("error", err.Error()))
			}
		}
	}

	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryBackoff), l.maxRetries),
	}
	for _, key := range keys {
		lk, err := l.client.Obtain(ctx, redisKeyPrefix+key, l.ttl, opts)
		if errors.Is(err, redislock.ErrNotObtained) {
			release()
			return nil, apperrors.NewAppError(http.StatusServiceUnavailable, fmt.Sprintf("%s is busy, try again", key), err)
		}
		if err != nil {
			release()
			return nil, apperrors.NewAppError(http.StatusServiceUnavailable, "failed to obtain lock", err)
		}
		held = append(held, lk)
	}
	return release, nil
}
