package config

import (
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"io/fs"
	"strings"
)

// ErrMissingPostgresURI is returned by Load when POSTGRES_URI is not set
var ErrMissingPostgresURI = errors.New("POSTGRES_URI is required")

type Config struct {
	PostgresURI string `koanf:"postgres_uri"`
	Port        string `koanf:"server_host_port"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	MaxOpenConns int `koanf:"db_max_open_conns"`
	MaxIdleConns int `koanf:"db_max_idle_conns"`

	// KeepAlive is a cron spec for pinging the pool, empty disables the job.
	KeepAlive string `koanf:"db_keepalive"`

	ShutdownTimeoutSeconds int `koanf:"shutdown_timeout_seconds"`
}

// Default returns the configuration used when nothing is set in the environment
func Default() *Config {
	return &Config{
		Port:                   "8000",
		LogLevel:               "info",
		LogFormat:              "text",
		KeepAlive:              "@every 1m",
		ShutdownTimeoutSeconds: 10,
	}
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already present in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to load .env file")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only
func FromEnv() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, errors.Wrap(err, "failed to read environment")
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}

	cfg.PostgresURI = strings.TrimSpace(cfg.PostgresURI)
	if cfg.PostgresURI == "" {
		return nil, ErrMissingPostgresURI
	}
	if cfg.Port == "" {
		cfg.Port = Default().Port
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
