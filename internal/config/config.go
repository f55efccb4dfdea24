// Package config provides Viper-based configuration loading for the encounter
// engine daemon and its client CLI.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/initiative/internal/game/difficulty"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// EngineConfig holds the engine's gRPC endpoint and new-game settings.
type EngineConfig struct {
	// GRPCHost is the bind/connect address for the engine gRPC service.
	GRPCHost string `mapstructure:"grpc_host"`
	// GRPCPort is the TCP port for the engine gRPC service.
	GRPCPort int `mapstructure:"grpc_port"`
	// CallTimeout bounds each client command. Zero means no deadline.
	CallTimeout time.Duration `mapstructure:"call_timeout"`
	// RosterPath is a roster YAML file or a directory of them.
	RosterPath string `mapstructure:"roster_path"`
	// RollHitPoints makes new games roll monster hit dice.
	RollHitPoints bool `mapstructure:"roll_hit_points"`
}

// Addr returns the "host:port" gRPC address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (e EngineConfig) Addr() string {
	return fmt.Sprintf("%s:%d", e.GRPCHost, e.GRPCPort)
}

// RedisConfig holds the dice roll history store settings.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// HistoryKey is the list key roll history is stored under.
	HistoryKey string `mapstructure:"history_key"`
	// HistoryLimit caps the number of retained rolls.
	HistoryLimit int `mapstructure:"history_limit"`
}

// SavepointConfig controls snapshot persistence after each engine mutation.
type SavepointConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// MaxCount is the number of newest savepoints retained per game.
	MaxCount int `mapstructure:"max_count"`
}

// RulesConfig selects the default difficulty rules.
type RulesConfig struct {
	Version string `mapstructure:"version"`
}

// ClientConfig holds CLI-only settings.
type ClientConfig struct {
	// PreferencesPath is the YAML file display preferences persist to.
	PreferencesPath string `mapstructure:"preferences_path"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig   `mapstructure:"logging"`
	Engine     EngineConfig    `mapstructure:"engine"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Savepoints SavepointConfig `mapstructure:"savepoints"`
	Rules      RulesConfig     `mapstructure:"rules"`
	Client     ClientConfig    `mapstructure:"client"`
}

// Validate checks all configuration invariants. The database and redis
// sections are only checked when the features using them are enabled.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEngine(c.Engine); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Savepoints.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
		if c.Savepoints.MaxCount < 1 {
			errs = append(errs, fmt.Sprintf("savepoints.max_count must be >= 1, got %d", c.Savepoints.MaxCount))
		}
	}
	if c.Redis.Enabled {
		if err := validateRedis(c.Redis); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if _, err := difficulty.ParseRulesVersion(c.Rules.Version); err != nil {
		errs = append(errs, fmt.Sprintf("rules.version: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateEngine(e EngineConfig) error {
	var errs []string
	if e.GRPCHost == "" {
		errs = append(errs, "engine.grpc_host must not be empty")
	}
	if e.GRPCPort < 1 || e.GRPCPort > 65535 {
		errs = append(errs, fmt.Sprintf("engine.grpc_port must be 1-65535, got %d", e.GRPCPort))
	}
	if e.CallTimeout < 0 {
		errs = append(errs, "engine.call_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRedis(r RedisConfig) error {
	var errs []string
	if r.Addr == "" {
		errs = append(errs, "redis.addr must not be empty")
	}
	if r.DB < 0 {
		errs = append(errs, fmt.Sprintf("redis.db must be >= 0, got %d", r.DB))
	}
	if r.HistoryKey == "" {
		errs = append(errs, "redis.history_key must not be empty")
	}
	if r.HistoryLimit < 1 {
		errs = append(errs, fmt.Sprintf("redis.history_limit must be >= 1, got %d", r.HistoryLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with INITIATIVE_ prefix
	v.SetEnvPrefix("INITIATIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("engine.grpc_host", "127.0.0.1")
	v.SetDefault("engine.grpc_port", 50061)
	v.SetDefault("engine.call_timeout", "5s")
	v.SetDefault("engine.roster_path", "rosters")
	v.SetDefault("engine.roll_hit_points", true)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "initiative")
	v.SetDefault("database.password", "initiative")
	v.SetDefault("database.name", "initiative")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.history_key", "initiative:rolls")
	v.SetDefault("redis.history_limit", 100)

	v.SetDefault("savepoints.enabled", false)
	v.SetDefault("savepoints.max_count", 50)

	v.SetDefault("rules.version", string(difficulty.SRD51))

	v.SetDefault("client.preferences_path", "preferences.yaml")
}
