package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string `env:"DATABASE_URL"`

	// HTTP server configuration
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Ledger settings
	StartingBalance  int64 `env:"STARTING_BALANCE" envDefault:"10"`
	MaxAccountsPerIP int64 `env:"MAX_ACCOUNTS_PER_IP" envDefault:"5"`
	HistoryLimit     int   `env:"HISTORY_LIMIT" envDefault:"50"`

	// Environment: "development", "production" or "test"
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
