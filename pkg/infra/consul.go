package infra

import (
	"fmt"
	"time"

	"github.com/fystack/kvcache/pkg/config"
	"github.com/fystack/kvcache/pkg/logger"
	"github.com/hashicorp/consul/api"
)

// ConsulKV is the subset of *api.KV the consul store needs.
type ConsulKV interface {
	Put(kv *api.KVPair, options *api.WriteOptions) (*api.WriteMeta, error)
	Get(key string, options *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
	CAS(kv *api.KVPair, options *api.WriteOptions) (bool, *api.WriteMeta, error)
	DeleteTree(prefix string, options *api.WriteOptions) (*api.WriteMeta, error)
}

var _ ConsulKV = (*api.KV)(nil)

// NewConsulClient builds a Consul client from cfg and waits for a cluster leader.
func NewConsulClient(cfg *config.ConsulConfig, connect *config.ConnectConfig) (*api.Client, error) {
	apiConfig := api.DefaultConfig()
	apiConfig.Address = cfg.Address
	apiConfig.Token = cfg.Token
	apiConfig.WaitTime = 10 * time.Second
	if cfg.Username != "" || cfg.Password != "" {
		apiConfig.HttpAuth = &api.HttpBasicAuth{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	logger.Info("Consul config",
		"address", apiConfig.Address,
		"wait_time", apiConfig.WaitTime,
		"token_length", len(apiConfig.Token),
		"http_auth", apiConfig.HttpAuth != nil,
	)

	client, err := api.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	err = withConnectRetry("consul", connect, func() error {
		_, err := client.Status().Leader()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("connect to consul at %s: %w", cfg.Address, err)
	}

	logger.Info("Connected to consul!", "address", cfg.Address)
	return client, nil
}
