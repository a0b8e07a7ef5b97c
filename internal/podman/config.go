package podman

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config tunes the engine transport. A zero RequestTimeout leaves engine
// calls unbounded, matching a scrape pipeline that carries no deadline of
// its own.
type Config struct {
	RequestTimeout time.Duration `env:"PODMAN_REQUEST_TIMEOUT" envDefault:"0"`
	APIVersion     string        `env:"PODMAN_API_VERSION" envDefault:"v4.0.0"`
}

func NewConfig() (Config, error) {
	config := Config{}
	opts := env.Options{}

	if err := env.Parse(&config, opts); err != nil {
		return Config{}, err
	}
	return config, nil
}
