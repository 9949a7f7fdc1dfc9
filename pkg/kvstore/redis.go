package kvstore

import (
	"context"
	"errors"
	"strings"

	cerrors "github.com/fystack/kvcache/pkg/common/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore maps the Store contract onto a Redis logical database.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err == nil {
		return n, nil
	}

	// go-redis has no typed errors for these replies; match the server text of
	// "ERR value is not an integer or out of range" and
	// "ERR increment or decrement would overflow".
	switch msg := err.Error(); {
	case strings.Contains(msg, "not an integer"):
		return 0, cerrors.Wrapf(cerrors.ErrNotInteger, "incr %s", key)
	case strings.Contains(msg, "would overflow"):
		return 0, cerrors.Wrapf(cerrors.ErrOverflow, "incr %s", key)
	}
	return 0, err
}

// FlushAll empties the selected logical DB only; other DBs on the same server
// are left alone.
func (r *RedisStore) FlushAll(ctx context.Context) error {
	return r.client.FlushDB(ctx).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
