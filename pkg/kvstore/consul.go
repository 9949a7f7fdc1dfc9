package kvstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avast/retry-go"
	cerrors "github.com/fystack/kvcache/pkg/common/errors"
	"github.com/fystack/kvcache/pkg/infra"
	"github.com/hashicorp/consul/api"
)

const casAttempts = 50

var errCASMismatch = errors.New("consul cas index mismatch")

// ConsulStore keeps every key under a fixed, non-empty prefix of the Consul KV
// tree so FlushAll only drops what this store wrote.
type ConsulStore struct {
	kv     infra.ConsulKV
	prefix string
}

var _ Store = (*ConsulStore)(nil)

// NewConsulStore fails with errors.ErrEmptyPrefix when prefix names the root
// of the tree, since FlushAll would then delete every key in the cluster.
func NewConsulStore(kv infra.ConsulKV, prefix string) (*ConsulStore, error) {
	if strings.Trim(prefix, "/") == "" {
		return nil, cerrors.Wrapf(cerrors.ErrEmptyPrefix, "consul prefix %q", prefix)
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &ConsulStore{kv: kv, prefix: prefix}, nil
}

func (s *ConsulStore) composeKey(key string) string {
	return s.prefix + key
}

func (s *ConsulStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.kv.Put(&api.KVPair{Key: s.composeKey(key), Value: value}, writeOptions(ctx))
	return err
}

func (s *ConsulStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	pair, _, err := s.kv.Get(s.composeKey(key), queryOptions(ctx))
	if err != nil {
		return nil, false, err
	}
	if pair == nil {
		return nil, false, nil
	}
	return pair.Value, true, nil
}

// Incr is a check-and-set loop: a missing key is created with ModifyIndex 0,
// an existing one is swapped only if nobody changed it since it was read.
func (s *ConsulStore) Incr(ctx context.Context, key string) (int64, error) {
	fullKey := s.composeKey(key)
	var next int64

	err := retry.Do(
		func() error {
			pair, _, err := s.kv.Get(fullKey, queryOptions(ctx))
			if err != nil {
				return err
			}

			var (
				raw   []byte
				index uint64
			)
			if pair != nil {
				raw, index = pair.Value, pair.ModifyIndex
			}

			n, encoded, err := incrValue(key, raw, pair != nil)
			if err != nil {
				return err
			}

			ok, _, err := s.kv.CAS(&api.KVPair{Key: fullKey, Value: encoded, ModifyIndex: index}, writeOptions(ctx))
			if err != nil {
				return err
			}
			if !ok {
				return errCASMismatch
			}
			next = n
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(casAttempts),
		retry.Delay(2*time.Millisecond),
		retry.MaxJitter(10*time.Millisecond),
		retry.DelayType(retry.CombineDelay(retry.FixedDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errCASMismatch)
		}),
	)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (s *ConsulStore) FlushAll(ctx context.Context) error {
	_, err := s.kv.DeleteTree(s.prefix, writeOptions(ctx))
	return err
}

func (s *ConsulStore) Ping(ctx context.Context) error {
	_, _, err := s.kv.Get(s.prefix, queryOptions(ctx))
	return err
}

// Close is a no-op: the consul client holds no connection of its own.
func (s *ConsulStore) Close() error { return nil }

func queryOptions(ctx context.Context) *api.QueryOptions {
	return (&api.QueryOptions{}).WithContext(ctx)
}

func writeOptions(ctx context.Context) *api.WriteOptions {
	return (&api.WriteOptions{}).WithContext(ctx)
}
