package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fystack/kvcache/pkg/cache"
	"github.com/fystack/kvcache/pkg/config"
	"github.com/fystack/kvcache/pkg/constant"
	"github.com/fystack/kvcache/pkg/kvstore"
	"github.com/fystack/kvcache/pkg/logger"
	"github.com/fystack/kvcache/pkg/security"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	ENVIRONMENT = "ENVIRONMENT"
)

func main() {
	app := &cli.Command{
		Name:  "kvcache",
		Usage: "Store and read typed values through a call-counted key-value cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: ./kvcache.yaml if present)",
			},
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"b"},
				Usage:   "Store backend: memory, redis, badger or consul",
			},
			&cli.BoolFlag{
				Name:    "prompt-password",
				Aliases: []string{"p"},
				Usage:   "Prompt for the backend password instead of reading it from config",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "demo",
				Usage:     "Flush the store, store each value and read it back",
				ArgsUsage: "VALUE...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Value:   "auto",
						Usage:   "Value type: auto, text, int, float or blob (hex)",
					},
				},
				Action: runDemo,
			},
			{
				Name:   "calls",
				Usage:  "Print how many times Cache.Store was called (does not flush)",
				Action: runCalls,
			},
			{
				Name:   "ping",
				Usage:  "Check that the configured backend is reachable",
				Action: runPing,
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration with secrets masked",
				Action: runConfig,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Command) (*config.AppConfig, error) {
	if err := config.InitViperConfig(c.String("config")); err != nil {
		return nil, err
	}
	if backend := c.String("backend"); backend != "" {
		viper.Set("backend", backend)
	}

	environment := os.Getenv(ENVIRONMENT)
	if environment == "" {
		environment = viper.GetString("environment")
	}
	logger.Init(environment, c.Bool("debug"))

	if c.Bool("prompt-password") {
		if err := promptForPassword(viper.GetString("backend")); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// promptForPassword reads the secret of the selected backend from the terminal
// and puts it into viper before the config is decoded.
func promptForPassword(backend string) error {
	var key, label string
	switch backend {
	case constant.BackendRedis:
		key, label = "redis.password", "Redis password"
	case constant.BackendConsul:
		key, label = "consul.token", "Consul ACL token"
	case constant.BackendBadger:
		key, label = "badger.encryption_key", "Badger encryption key"
	default:
		return fmt.Errorf("backend %q has no password", backend)
	}

	fmt.Printf("Enter %s: ", label)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", label, err)
	}
	// only clears the terminal buffer; viper keeps its own string copy
	defer security.Wipe(secret)
	fmt.Println() // Add newline after password input

	if len(secret) == 0 {
		return fmt.Errorf("%s cannot be empty", label)
	}
	fmt.Printf("%s set: %s\n", label, maskString(string(secret)))

	viper.Set(key, string(secret))
	return nil
}

// maskString shows the first and last character of a string, replacing the middle with asterisks.
// Strings of two characters or fewer are masked entirely.
func maskString(s string) string {
	if len(s) <= 2 {
		return strings.Repeat("*", len(s))
	}

	masked := s[0:1]
	for i := 0; i < len(s)-2; i++ {
		masked += "*"
	}
	masked += s[len(s)-1:]

	return masked
}

func openStore(ctx context.Context, c *cli.Command) (kvstore.Store, *config.AppConfig, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func runDemo(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("at least one VALUE is required")
	}

	values, err := parseValues(c.String("type"), args)
	if err != nil {
		return err
	}

	store, cfg, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Backend != constant.BackendMemory {
		logger.Warn("Flushing store before demo", "backend", cfg.Backend)
	}

	kv, err := cache.New(ctx, store, cache.WithCounterPrefix(cfg.CounterPrefix))
	if err != nil {
		return err
	}

	for _, v := range values {
		key, err := kv.Store(ctx, v)
		if err != nil {
			return err
		}

		readBack, err := describe(ctx, kv, key, v.Kind())
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\t%s\n", key, v.Kind(), readBack)
	}

	calls, err := kv.Calls(ctx, cache.StoreMethod)
	if err != nil {
		return err
	}
	fmt.Printf("%s called %d times\n", cache.StoreMethod, calls)
	return nil
}

func runCalls(ctx context.Context, c *cli.Command) error {
	store, cfg, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	counter := cache.NewCallCounter(store, cfg.CounterPrefix)
	calls, err := counter.Calls(ctx, cache.StoreMethod)
	if err != nil {
		return err
	}
	fmt.Println(calls)
	return nil
}

func runPing(ctx context.Context, c *cli.Command) error {
	store, cfg, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", cfg.Backend, err)
	}
	logger.Info("Store is reachable", "backend", cfg.Backend)
	return nil
}

func runConfig(_ context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fmt.Println(cfg.MarshalJSONMask())
	return nil
}
