package infra

import (
	"time"

	"github.com/avast/retry-go"
	"github.com/fystack/kvcache/pkg/config"
	"github.com/fystack/kvcache/pkg/logger"
)

const (
	defaultConnectAttempts = 3
	defaultConnectDelay    = 200 * time.Millisecond
)

// withConnectRetry runs ping with fixed-delay retries. It is only used while
// establishing a connection; store operations are never retried here.
func withConnectRetry(service string, connect *config.ConnectConfig, ping func() error) error {
	attempts, delay := uint(defaultConnectAttempts), defaultConnectDelay
	if connect != nil {
		if connect.Attempts > 0 {
			attempts = connect.Attempts
		}
		if connect.Delay > 0 {
			delay = connect.Delay
		}
	}

	return retry.Do(
		ping,
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Ping failed, retrying", "service", service, "attempt", n+1, "error", err.Error())
		}),
	)
}
