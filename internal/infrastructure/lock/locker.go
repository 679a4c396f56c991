package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/mom-service/internal/infrastructure/cache"
)

// ErrNotAcquired is returned when another holder owns the key
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker hands out short-lived exclusive locks keyed by string.
// The returned release func is safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

const keyPrefix = "lock:"

// Only the holder's token may delete the key
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`)

// RedisLocker uses SET NX PX so locks hold across replicas
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be cancelled by the time we release.
			rctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			releaseScript.Run(rctx, l.client, []string{keyPrefix + key}, token)
		})
	}, nil
}

// MemoryLocker is the single-process fallback used when Redis is disabled
type MemoryLocker struct {
	store *cache.MemoryStore
}

func NewMemoryLocker(store *cache.MemoryStore) *MemoryLocker {
	return &MemoryLocker{store: store}
}

func (l *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	if !l.store.SetIfAbsent(keyPrefix+key, token, ttl) {
		return nil, ErrNotAcquired
	}
	return func() {
		l.store.DeleteIfValue(keyPrefix+key, token)
	}, nil
}
