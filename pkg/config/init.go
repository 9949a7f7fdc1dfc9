package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	cerrors "github.com/fystack/kvcache/pkg/common/errors"
	"github.com/fystack/kvcache/pkg/constant"
	"github.com/fystack/kvcache/pkg/logger"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Environment   string `mapstructure:"environment"`
	Backend       string `mapstructure:"backend"`
	CounterPrefix string `mapstructure:"counter_prefix"`

	Connect *ConnectConfig `mapstructure:"connect"`
	Redis   *RedisConfig   `mapstructure:"redis"`
	Consul  *ConsulConfig  `mapstructure:"consul"`
	Badger  *BadgerConfig  `mapstructure:"badger"`
}

// MarshalJSONMask serializes the config with every secret replaced by asterisks.
func (c AppConfig) MarshalJSONMask() string {
	if c.Redis != nil {
		redis := *c.Redis
		redis.Password = mask(redis.Password)
		c.Redis = &redis
	}
	if c.Consul != nil {
		consul := *c.Consul
		consul.Password = mask(consul.Password)
		consul.Token = mask(consul.Token)
		c.Consul = &consul
	}
	if c.Badger != nil {
		badger := *c.Badger
		badger.EncryptionKey = mask(badger.EncryptionKey)
		c.Badger = &badger
	}

	bytes, err := json.Marshal(c)
	if err != nil {
		logger.Error("Failed to marshal app config", err)
	}
	return string(bytes)
}

// Validate checks that the selected backend is known and has its section set.
func (c *AppConfig) Validate() error {
	if !lo.Contains(constant.Backends, c.Backend) {
		return fmt.Errorf("%w: %q must be one of %s", cerrors.ErrUnknownBackend, c.Backend, strings.Join(constant.Backends, ", "))
	}

	switch c.Backend {
	case constant.BackendRedis:
		if c.Redis == nil || c.Redis.Address == "" {
			return fmt.Errorf("redis.address is required for the redis backend")
		}
	case constant.BackendConsul:
		if c.Consul == nil || c.Consul.Address == "" {
			return fmt.Errorf("consul.address is required for the consul backend")
		}
		if strings.Trim(c.Consul.Prefix, "/") == "" {
			return fmt.Errorf("%w: consul.prefix would flush the whole consul kv tree", cerrors.ErrEmptyPrefix)
		}
	case constant.BackendBadger:
		if c.Badger == nil || (!c.Badger.InMemory && c.Badger.Path == "") {
			return fmt.Errorf("badger.path is required unless badger.in_memory is set")
		}
	}

	if c.Connect != nil && c.Connect.Attempts == 0 {
		return fmt.Errorf("connect.attempts must be at least 1")
	}

	return nil
}

// ConnectConfig controls how often the initial ping is retried.
type ConnectConfig struct {
	Attempts uint          `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
}

type RedisConfig struct {
	Address     string        `mapstructure:"address"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type ConsulConfig struct {
	Address  string `mapstructure:"address"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Token    string `mapstructure:"token"`
	Prefix   string `mapstructure:"prefix"`
}

type BadgerConfig struct {
	Path          string `mapstructure:"path"`
	InMemory      bool   `mapstructure:"in_memory"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

func mask(s string) string {
	return strings.Repeat("*", len(s))
}

func setDefaults() {
	viper.SetDefault("environment", constant.EnvDevelopment)
	viper.SetDefault("backend", constant.BackendMemory)
	viper.SetDefault("counter_prefix", constant.DefaultCounterPrefix)
	viper.SetDefault("connect.attempts", 3)
	viper.SetDefault("connect.delay", "200ms")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dial_timeout", "5s")
	viper.SetDefault("consul.address", "localhost:8500")
	viper.SetDefault("consul.prefix", constant.DefaultConsulPrefix)
	viper.SetDefault("badger.path", "./db/kvcache")
	viper.SetDefault("badger.in_memory", false)

	// registered so AutomaticEnv can surface them through AllSettings
	for _, key := range []string{"redis.username", "redis.password", "consul.username", "consul.password", "consul.token", "badger.encryption_key"} {
		viper.SetDefault(key, "")
	}
}

// InitViperConfig registers defaults and environment lookup, then reads the
// config file. An empty configFile searches for kvcache.yaml in the working
// directory; a missing file there is not an error.
func InitViperConfig(configFile string) error {
	setDefaults()
	viper.SetEnvPrefix("KVCACHE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("kvcache")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			logger.Debug("No config file found, using defaults and environment")
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	logger.Info("Reading config file", "path", viper.ConfigFileUsed())
	return nil
}

func LoadConfig() (*AppConfig, error) {
	var config AppConfig
	decoderConfig := &mapstructure.DecoderConfig{
		Result:           &config,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("create config decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &config, nil
}
