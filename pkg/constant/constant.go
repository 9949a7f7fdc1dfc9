package constant

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Store backends selectable through the `backend` config key.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendBadger = "badger"
	BackendConsul = "consul"
)

var Backends = []string{BackendMemory, BackendRedis, BackendBadger, BackendConsul}

const (
	// DefaultCounterPrefix keeps invocation counters apart from generated keys.
	DefaultCounterPrefix = "calls:"
	DefaultConsulPrefix  = "kvcache/"
)
