package client

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the environment variable prefix read by LoadConfig.
const EnvPrefix = "SCOPEKIT"

// Config holds client settings.
type Config struct {
	// Enabled turns event capture on. A disabled client reports IsActive
	// false and the tracing facade starts no transactions.
	Enabled bool `envconfig:"ENABLED" default:"true"`

	// SampleRate is the static transaction sample rate in [0, 1]. Nil
	// disables tracing.
	SampleRate *float64 `envconfig:"SAMPLE_RATE"`

	// Environment, Release and ServerName are stamped onto events that do not
	// already carry them.
	Environment string `envconfig:"ENVIRONMENT"`
	Release     string `envconfig:"RELEASE"`
	ServerName  string `envconfig:"SERVER_NAME"`

	// Debug logs every captured event at debug level in addition to the
	// encoded payload.
	Debug bool `envconfig:"DEBUG"`
}

// LoadConfig reads Config from SCOPEKIT_* environment variables and
// validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load client config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects a sample rate outside [0, 1].
func (c Config) Validate() error {
	if c.SampleRate != nil && (*c.SampleRate < 0 || *c.SampleRate > 1) {
		return fmt.Errorf("%w: sample rate must be between 0.0 and 1.0, got %f", ErrInvalidConfig, *c.SampleRate)
	}
	return nil
}

// Options builds the Options exposed to the engines.
func (c Config) Options() Options {
	opts := Options{
		Environment: c.Environment,
		Release:     c.Release,
		ServerName:  c.ServerName,
	}
	if c.SampleRate != nil {
		opts.SampleRate = Float64(*c.SampleRate)
	}
	return opts
}

// Float64 returns a pointer to v, for building Options and Config literals.
func Float64(v float64) *float64 {
	return &v
}
