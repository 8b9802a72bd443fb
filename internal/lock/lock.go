// Package lock provides the per-task lease the scheduler takes before running a
// job tick, so only one process runs a given task at a time.
package lock

import (
	"context"
	"time"

	cr "github.com/cockroachdb/errors"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "salon-scheduler:lock:"

type Locker interface {
	// Acquire returns a release func and true when the lease was taken; false
	// means another holder has it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error)
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) *RedisLocker {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLocker) Close() error {
	return l.client.Close()
}

func (l *RedisLocker) Acquire(
	ctx context.Context,
	name string,
	ttl time.Duration,
) (func(context.Context) error, bool, error) {

	key := keyPrefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, cr.Wrapf(err, "acquire lock %s", name)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
		if err != nil && err != redis.Nil {
			return cr.Wrapf(err, "release lock %s", name)
		}
		return nil
	}
	return release, true, nil
}

// Noop always grants the lease. Used when Redis is not configured and the
// process is the only scheduler.
type Noop struct{}

func (Noop) Acquire(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

var (
	_ Locker = (*RedisLocker)(nil)
	_ Locker = Noop{}
)
