// Package cache is a typed facade over a kvstore.Store: values go in under
// fresh random keys, come back raw or decoded, and every Store call is
// counted in the store itself.
package cache

import (
	"context"

	"github.com/fystack/kvcache/pkg/common/errors"
	"github.com/fystack/kvcache/pkg/common/generation"
	"github.com/fystack/kvcache/pkg/constant"
	"github.com/fystack/kvcache/pkg/kvstore"
)

// StoreMethod is the counter name under which Cache.Store calls are recorded.
const StoreMethod = "Cache.Store"

type Cache struct {
	store   kvstore.Store
	counter *CallCounter
	newKey  func() (string, error)
	storeOp Op[Value, string]
}

type options struct {
	counterPrefix string
	newKey        func() (string, error)
}

type Option func(*options)

// WithCounterPrefix changes the key prefix of invocation counters.
func WithCounterPrefix(prefix string) Option {
	return func(o *options) { o.counterPrefix = prefix }
}

// WithKeyGenerator replaces the uuid key generator.
func WithKeyGenerator(fn func() (string, error)) Option {
	return func(o *options) { o.newKey = fn }
}

// New wraps store and flushes it. The flush is global: every key and counter
// already in the store's namespace is gone afterwards, including ones written
// by other Cache instances sharing the store.
func New(ctx context.Context, store kvstore.Store, opts ...Option) (*Cache, error) {
	o := options{
		counterPrefix: constant.DefaultCounterPrefix,
		newKey:        generation.GenerateKey,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := store.FlushAll(ctx); err != nil {
		return nil, errors.Wrap(err, "flush store")
	}

	c := &Cache{
		store:   store,
		counter: NewCallCounter(store, o.counterPrefix),
		newKey:  o.newKey,
	}
	c.storeOp = Count[Value, string](c.counter, StoreMethod, c.put)
	return c, nil
}

// Store writes v under a freshly generated key and returns that key.
func (c *Cache) Store(ctx context.Context, v Value) (string, error) {
	return c.storeOp(ctx, v)
}

func (c *Cache) put(ctx context.Context, v Value) (string, error) {
	data, err := v.Encode()
	if err != nil {
		return "", err
	}

	key, err := c.newKey()
	if err != nil {
		return "", errors.Wrap(err, "generate key")
	}

	if err := c.store.Set(ctx, key, data); err != nil {
		return "", errors.Wrapf(err, "set %s", key)
	}
	return key, nil
}

// Get returns the raw bytes stored under key. A missing key yields
// found == false and no error.
func (c *Cache) Get(ctx context.Context, key string) (raw []byte, found bool, err error) {
	return c.store.Get(ctx, key)
}

// GetAs looks key up and runs decode on the stored bytes. Decode failures are
// returned as is with found == true; a missing key never reaches decode. Use
// Get for the undecoded bytes.
func GetAs[T any](ctx context.Context, c *Cache, key string, decode Decoder[T]) (T, bool, error) {
	var zero T
	raw, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return zero, false, err
	}
	if decode == nil {
		return zero, false, errors.New("nil decoder")
	}

	v, err := decode(raw)
	if err != nil {
		return zero, true, err
	}
	return v, true, nil
}

// GetString reads key as UTF-8 text.
func (c *Cache) GetString(ctx context.Context, key string) (string, bool, error) {
	return GetAs(ctx, c, key, DecodeString)
}

// GetInt reads key as base-10 text and parses it into an int64.
func (c *Cache) GetInt(ctx context.Context, key string) (int64, bool, error) {
	return GetAs(ctx, c, key, DecodeInt)
}

// GetFloat reads key as text and parses it into a float64.
func (c *Cache) GetFloat(ctx context.Context, key string) (float64, bool, error) {
	return GetAs(ctx, c, key, DecodeFloat)
}

// Calls returns the invocation counter for a tracked method, e.g. StoreMethod.
func (c *Cache) Calls(ctx context.Context, method string) (int64, error) {
	return c.counter.Calls(ctx, method)
}

// CounterKey returns the store key of the counter for method.
func (c *Cache) CounterKey(method string) string {
	return c.counter.Key(method)
}
