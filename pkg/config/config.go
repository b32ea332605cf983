package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment once at startup. Optional integrations
// (broker, redis, catalog service) stay off when their address is empty.
type Config struct {
	ListenAddress   string        `env:"LISTEN_ADDRESS" envDefault:":8080"`
	CatalogUrl      string        `env:"CATALOG_URL"`
	RabbitUrl       string        `env:"RABBIT_URL"`
	TopicPrefix     string        `env:"TOPIC_PREFIX" envDefault:"liquoronline"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDb         int           `env:"REDIS_DB" envDefault:"0"`
	DataPath        string        `env:"DATA_PATH" envDefault:"data"`
	CacheTtl        time.Duration `env:"CACHE_TTL" envDefault:"2m"`
	CartTtl         time.Duration `env:"CART_TTL" envDefault:"720h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
