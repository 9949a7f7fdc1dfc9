package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/fystack/kvcache/pkg/logger"
)

const incrConflictAttempts = 50

// BadgerKVStore is an embedded Store backed by BadgerDB.
type BadgerKVStore struct {
	db *badger.DB
}

var _ Store = (*BadgerKVStore)(nil)

// BadgerOptions configures NewBadgerKVStore. An empty EncryptionKey leaves
// the data unencrypted; otherwise it must be 16, 24 or 32 bytes.
type BadgerOptions struct {
	Path          string
	InMemory      bool
	EncryptionKey []byte
}

// NewBadgerKVStore opens (or creates) a BadgerDB.
func NewBadgerKVStore(opts BadgerOptions) (*BadgerKVStore, error) {
	dbOpts := badger.DefaultOptions(opts.Path).
		WithLogger(newQuietBadgerLogger()).
		WithCompression(options.ZSTD)

	if opts.InMemory {
		dbOpts = dbOpts.WithDir("").WithValueDir("").WithInMemory(true)
	}
	if len(opts.EncryptionKey) > 0 {
		dbOpts = dbOpts.WithEncryptionKey(opts.EncryptionKey).WithIndexCacheSize(100 << 20) // 100MB
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	logger.Info("Connected to BadgerDB successfully!", "path", opts.Path, "in_memory", opts.InMemory)

	return &BadgerKVStore{db: db}, nil
}

func (b *BadgerKVStore) Set(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (b *BadgerKVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	var result []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// Incr runs a read-modify-write transaction, retried when a concurrent
// writer makes the commit conflict.
func (b *BadgerKVStore) Incr(ctx context.Context, key string) (int64, error) {
	var next int64
	err := retry.Do(
		func() error {
			return b.db.Update(func(txn *badger.Txn) error {
				raw, found, err := getInTxn(txn, key)
				if err != nil {
					return err
				}
				n, encoded, err := incrValue(key, raw, found)
				if err != nil {
					return err
				}
				next = n
				return txn.Set([]byte(key), encoded)
			})
		},
		retry.Context(ctx),
		retry.Attempts(incrConflictAttempts),
		retry.Delay(time.Millisecond),
		retry.MaxJitter(5*time.Millisecond),
		retry.DelayType(retry.CombineDelay(retry.FixedDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, badger.ErrConflict)
		}),
	)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func getInTxn(txn *badger.Txn, key string) ([]byte, bool, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	val, err := item.ValueCopy(nil)
	return val, err == nil, err
}

func (b *BadgerKVStore) FlushAll(_ context.Context) error {
	return b.db.DropAll()
}

func (b *BadgerKVStore) Ping(_ context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return nil
}

func (b *BadgerKVStore) Close() error {
	return b.db.Close()
}
