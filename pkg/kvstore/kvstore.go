package kvstore

import (
	"context"
	"math"
	"strconv"

	"github.com/fystack/kvcache/pkg/common/errors"
)

// Store is the key-value backend the cache talks to. Every call is one round
// trip and is atomic at the backend; the caller adds no locking of its own.
type Store interface {
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Get returns the value stored under key. A missing key is reported with
	// found == false and a nil error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Incr increments the integer stored under key and returns the new value.
	// A missing key counts as 0. A non-integer value fails with errors.ErrNotInteger,
	// a value already at math.MaxInt64 with errors.ErrOverflow.
	Incr(ctx context.Context, key string) (int64, error)

	// FlushAll removes every key in the store's namespace.
	FlushAll(ctx context.Context) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}

// incrValue parses a stored counter and returns its successor encoded the way
// it is written back.
func incrValue(key string, raw []byte, found bool) (int64, []byte, error) {
	var current int64
	if found {
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, nil, errors.Wrapf(errors.ErrNotInteger, "incr %s", key)
		}
		current = n
	}
	if current == math.MaxInt64 {
		return 0, nil, errors.Wrapf(errors.ErrOverflow, "incr %s", key)
	}

	next := current + 1
	return next, []byte(strconv.FormatInt(next, 10)), nil
}
