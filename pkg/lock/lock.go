// Package lock provides a Redis lease used to keep reconciliation of a transaction single-flight
// across processes.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotAcquired is returned when another holder owns the lock.
	ErrNotAcquired = errors.New("lock held by another owner")
	// ErrNotHeld is returned on release when the lease already expired or passed to another holder.
	ErrNotHeld = errors.New("lock was not held or already expired")
)

// DefaultTTL bounds how long a crashed holder can block other processes.
const DefaultTTL = 30 * time.Second

// Locker acquires named leases.
type Locker interface {
	Acquire(ctx context.Context, name string) (release func(context.Context) error, err error)
}

// RedisLocker implements Locker with a single-attempt redsync mutex per name.
type RedisLocker struct {
	rs     *redsync.Redsync
	prefix string
	ttl    time.Duration
}

// Make sure we conform to the interface
var _ Locker = (*RedisLocker)(nil)

// NewRedisLocker creates a RedisLocker. A zero ttl uses DefaultTTL.
func NewRedisLocker(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		prefix: prefix,
		ttl:    ttl,
	}
}

// NewClient parses a redis:// URL into a client.
func NewClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

// Acquire takes the lease for name or returns ErrNotAcquired. It never waits for the current holder.
func (l *RedisLocker) Acquire(ctx context.Context, name string) (func(context.Context) error, error) {
	key := l.prefix + name
	mutex := l.rs.NewMutex(key, redsync.WithExpiry(l.ttl), redsync.WithTries(1))

	if err := mutex.TryLockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.As(err, &taken) {
			return nil, ErrNotAcquired
		}
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}

	release := func(ctx context.Context) error {
		ok, err := mutex.UnlockContext(ctx)
		if ok {
			return nil
		}
		var taken *redsync.ErrTaken
		if err == nil || errors.As(err, &taken) || errors.Is(err, redsync.ErrLockAlreadyExpired) {
			return fmt.Errorf("%w: %s", ErrNotHeld, key)
		}
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return release, nil
}
