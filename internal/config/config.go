package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration for the toa command.
type Config struct {
	TOA     TOAConfig `envPrefix:"TOA_"`
	Log     LogConfig `envPrefix:"LOG_"`
	Metrics MetricsConfig
	Retry   RetryConfig `envPrefix:"RETRY_"`
	Watch   WatchConfig `envPrefix:"WATCH_"`
}

// TOAConfig is how the client reaches the API.
type TOAConfig struct {
	APIKey            string        `env:"API_KEY,required,notEmpty"`
	BaseURL           string        `env:"BASE_URL" envDefault:"https://theorangealliance.org/api"`
	ApplicationOrigin string        `env:"APP_ORIGIN" envDefault:"toa-client"`
	Timeout           time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `env:"METRICS_ENABLED" envDefault:"false"`
	Port         string `env:"METRICS_PORT" envDefault:"9090"`
	OtlpEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"toa-client"`
	OtlpInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
}

// RetryConfig bounds caller-side retries around client calls.
type RetryConfig struct {
	MaxAttempts     int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialInterval time.Duration `env:"INITIAL_INTERVAL" envDefault:"500ms"`
	MaxInterval     time.Duration `env:"MAX_INTERVAL" envDefault:"10s"`
}

// WatchConfig sets the rankings poll cadence. TOA asks clients to stay well
// under its per-key quota, so the floor is one second.
type WatchConfig struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"1m"`
}

const minWatchInterval = time.Second

// ErrInvalid is wrapped by every validation failure from Load.
var ErrInvalid = errors.New("invalid config")

// Load parses the environment into Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.TOA.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: TOA_TIMEOUT must be positive, got %s", ErrInvalid, c.TOA.Timeout))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%w: RETRY_MAX_ATTEMPTS must be at least 1, got %d", ErrInvalid, c.Retry.MaxAttempts))
	}
	if c.Retry.InitialInterval <= 0 || c.Retry.MaxInterval < c.Retry.InitialInterval {
		errs = append(errs, fmt.Errorf("%w: retry intervals must satisfy 0 < initial <= max, got %s/%s", ErrInvalid, c.Retry.InitialInterval, c.Retry.MaxInterval))
	}
	if c.Watch.Interval < minWatchInterval {
		errs = append(errs, fmt.Errorf("%w: WATCH_INTERVAL must be at least %s, got %s", ErrInvalid, minWatchInterval, c.Watch.Interval))
	}
	return errors.Join(errs...)
}
