package infra

import (
	"context"
	"fmt"

	"github.com/fystack/kvcache/pkg/config"
	"github.com/fystack/kvcache/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient dials the configured server and pings it until it answers or
// the connect attempts run out.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, connect *config.ConnectConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Address,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	err := withConnectRetry("redis", connect, func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Address, err)
	}

	logger.Info("Connected to redis!", "address", cfg.Address, "db", cfg.DB)
	return client, nil
}
