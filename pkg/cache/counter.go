package cache

import (
	"context"

	"github.com/fystack/kvcache/pkg/common/errors"
	"github.com/fystack/kvcache/pkg/kvstore"
)

// Op is a context-aware operation with one argument, the shape Count wraps.
type Op[A, R any] func(ctx context.Context, arg A) (R, error)

// CallCounter keeps one durable invocation counter per operation name in the
// store, under prefix+name.
type CallCounter struct {
	store  kvstore.Store
	prefix string
}

func NewCallCounter(store kvstore.Store, prefix string) *CallCounter {
	return &CallCounter{store: store, prefix: prefix}
}

// Key returns the store key holding the counter for name.
func (c *CallCounter) Key(name string) string {
	return c.prefix + name
}

// Count returns op wrapped so that every call first increments the counter
// for name. Arguments, results and errors of op pass through untouched. When
// the increment itself fails op is not called and the store error is returned.
func Count[A, R any](c *CallCounter, name string, op Op[A, R]) Op[A, R] {
	key := c.Key(name)
	return func(ctx context.Context, arg A) (R, error) {
		if _, err := c.store.Incr(ctx, key); err != nil {
			var zero R
			return zero, errors.Wrapf(err, "count call %s", name)
		}
		return op(ctx, arg)
	}
}

// Calls returns how many times name has been counted; 0 when it never was.
func (c *CallCounter) Calls(ctx context.Context, name string) (int64, error) {
	raw, found, err := c.store.Get(ctx, c.Key(name))
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return DecodeInt(raw)
}
