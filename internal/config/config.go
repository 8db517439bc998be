// Package config loads runtime configuration for the triage service using
// Viper: YAML file, environment variables with the ACUCARE prefix, and
// defaults, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete runtime configuration.
type Config struct {
	RuleSets RuleSetsConfig `mapstructure:"rulesets"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// RuleSetsConfig locates the approved rule-set artifacts.
type RuleSetsConfig struct {
	Dir     string `mapstructure:"dir"`
	Default string `mapstructure:"default"`
}

// StoreConfig selects the disposition store backend.
type StoreConfig struct {
	Backend     string `mapstructure:"backend"` // memory, sqlite, postgres
	SQLitePath  string `mapstructure:"sqlite_path"`
	DatabaseURL string `mapstructure:"database_url"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Manager loads and validates configuration.
type Manager struct {
	config *Config
}

// NewManager creates a configuration manager and loads configuration from
// file, environment, and defaults.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/acucare-pathways/")

	viper.SetEnvPrefix("ACUCARE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars cover the rest.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) setDefaults() {
	viper.SetDefault("rulesets.dir", "./rulesets")
	viper.SetDefault("rulesets.default", "triage_default")

	viper.SetDefault("store.backend", "sqlite")
	viper.SetDefault("store.sqlite_path", "./data/dispositions.db")
	viper.SetDefault("store.database_url", "")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// GetConfig returns the loaded configuration.
func (m *Manager) GetConfig() *Config {
	return m.config
}

// Validate checks the configuration for obvious misconfiguration.
func (m *Manager) Validate() error {
	config := m.config

	if config.RuleSets.Dir == "" {
		return fmt.Errorf("rulesets directory is required")
	}
	if config.RuleSets.Default == "" {
		return fmt.Errorf("default ruleset name is required")
	}

	switch strings.ToLower(config.Store.Backend) {
	case "memory":
	case "sqlite":
		if config.Store.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for the sqlite backend")
		}
	case "postgres":
		if config.Store.DatabaseURL == "" {
			return fmt.Errorf("database URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("invalid store backend: %s", config.Store.Backend)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}
