package kvstore

import (
	"context"
	"os"

	"github.com/fystack/kvcache/pkg/common/errors"
	"github.com/fystack/kvcache/pkg/common/pathutil"
	"github.com/fystack/kvcache/pkg/config"
	"github.com/fystack/kvcache/pkg/constant"
	"github.com/fystack/kvcache/pkg/infra"
	"github.com/fystack/kvcache/pkg/logger"
)

// Open connects to the backend named by cfg.Backend.
func Open(ctx context.Context, cfg *config.AppConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid store config")
	}

	logger.Debug("Opening store", "backend", cfg.Backend)

	switch cfg.Backend {
	case constant.BackendMemory:
		return NewMemoryStore(), nil

	case constant.BackendRedis:
		client, err := infra.NewRedisClient(ctx, cfg.Redis, cfg.Connect)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil

	case constant.BackendConsul:
		client, err := infra.NewConsulClient(cfg.Consul, cfg.Connect)
		if err != nil {
			return nil, err
		}
		return NewConsulStore(client.KV(), cfg.Consul.Prefix)

	case constant.BackendBadger:
		opts := BadgerOptions{
			InMemory:      cfg.Badger.InMemory,
			EncryptionKey: []byte(cfg.Badger.EncryptionKey),
		}
		if !opts.InMemory {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			dir, err := pathutil.DataDir(wd, cfg.Badger.Path)
			if err != nil {
				return nil, err
			}
			if err := pathutil.EnsureDir(dir); err != nil {
				return nil, errors.Wrapf(err, "create badger dir %s", dir)
			}
			opts.Path = dir
		}
		store, err := NewBadgerKVStore(opts)
		if err != nil {
			return nil, errors.Wrap(err, "open badger")
		}
		return store, nil
	}

	return nil, errors.Wrapf(errors.ErrUnknownBackend, "backend %q", cfg.Backend)
}
