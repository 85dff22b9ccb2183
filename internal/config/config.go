package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the service configuration. Values come from the YAML file named by
// CONFIG_PATH when set, and are overridden by environment variables.
type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Feed       `yaml:"feed"`
	Storage    `yaml:"storage"`
	Log        `yaml:"log"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Feed struct {
	URL              string        `yaml:"url" env:"FEED_URL" env-default:"https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"`
	BaseCurrency     string        `yaml:"base_currency" env:"FEED_BASE_CURRENCY" env-default:"EUR"`
	Timeout          time.Duration `yaml:"timeout" env:"FEED_TIMEOUT" env-default:"10s"`
	MinFetchInterval time.Duration `yaml:"min_fetch_interval" env:"FEED_MIN_FETCH_INTERVAL" env-default:"1h"`
	MaxSnapshotAge   time.Duration `yaml:"max_snapshot_age" env:"FEED_MAX_SNAPSHOT_AGE" env-default:"24h"`
}

type Storage struct {
	Path     string `yaml:"path" env:"STORAGE_PATH" env-default:"./data"`
	InMemory bool   `yaml:"in_memory" env:"STORAGE_IN_MEMORY" env-default:"false"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"INFO"`
}

// Load reads and validates the configuration
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to find config file: %w", err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad is Load for process startup
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// Validate checks values cleanenv cannot check by itself
func (c *Config) Validate() error {
	var errs []error

	if c.Feed.URL == "" {
		errs = append(errs, errors.New("feed url must not be empty"))
	}
	if len(c.Feed.BaseCurrency) != 3 {
		errs = append(errs, fmt.Errorf("feed base currency %q must be a 3-letter code", c.Feed.BaseCurrency))
	}
	if c.Feed.MinFetchInterval <= 0 {
		errs = append(errs, errors.New("feed min fetch interval must be positive"))
	}
	if c.Feed.MaxSnapshotAge <= 0 {
		errs = append(errs, errors.New("feed max snapshot age must be positive"))
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		errs = append(errs, errors.New("storage path must not be empty"))
	}

	return errors.Join(errs...)
}
