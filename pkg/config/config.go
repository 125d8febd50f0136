// Package config layers the fmpart driver's settings the way
// cobra/viper tools in the retrieval pack do it: built-in defaults,
// overridden by an optional TOML file, overridden by environment
// variables, overridden last by CLI flags (applied by the caller).
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds every setting fmpart reads from file/env, independent
// of the per-invocation CLI flags cobra binds directly onto command
// structs.
type Config struct {
	// Balance is the default balance factor r passed to fm.Build when
	// the CLI doesn't override it with --balance.
	Balance float64 `toml:"balance"`

	// Trials is the default --trials count for pkg/batch.
	Trials int `toml:"trials"`

	// LogLevel / LogTimeFormat seed pkg/logger's viper defaults.
	LogLevel      int    `toml:"log_level"`
	LogTimeFormat string `toml:"log_time_format"`

	// CacheTTLSeconds bounds how long pkg/cache's L2 (Redis) entries
	// live. L1 entries do not expire; they leave only by LRU eviction.
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`

	// RedisAddr, if non-empty, enables pkg/cache's L2 tier.
	RedisAddr string `toml:"redis_addr"`

	// MongoURI, if non-empty, enables pkg/history's run-history store.
	MongoURI string `toml:"mongo_uri"`

	// HTTPAddr is the listen address for the "serve" subcommand.
	HTTPAddr string `toml:"http_addr"`
}

// Default returns the built-in defaults, the bottom of the layering.
func Default() Config {
	return Config{
		Balance:         0.2,
		Trials:          1,
		LogLevel:        0,
		LogTimeFormat:   "2006-01-02T15:04:05.000Z07:00",
		CacheTTLSeconds: 3600,
		HTTPAddr:        ":8080",
	}
}

// Load builds a Config starting from Default, then overlaying an
// optional TOML file at path (skipped entirely if path is empty),
// then environment variables bound through viper (FMPART_BALANCE,
// FMPART_TRIALS, etc). CLI flags are layered on top of the returned
// Config by the caller, not here.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config: decode %s", path)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("FMPART")
	v.AutomaticEnv()

	v.SetDefault("balance", cfg.Balance)
	v.SetDefault("trials", cfg.Trials)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_time_format", cfg.LogTimeFormat)
	v.SetDefault("cache_ttl_seconds", cfg.CacheTTLSeconds)
	v.SetDefault("redis_addr", cfg.RedisAddr)
	v.SetDefault("mongo_uri", cfg.MongoURI)
	v.SetDefault("http_addr", cfg.HTTPAddr)

	cfg.Balance = v.GetFloat64("balance")
	cfg.Trials = v.GetInt("trials")
	cfg.LogLevel = v.GetInt("log_level")
	cfg.LogTimeFormat = v.GetString("log_time_format")
	cfg.CacheTTLSeconds = v.GetInt("cache_ttl_seconds")
	cfg.RedisAddr = v.GetString("redis_addr")
	cfg.MongoURI = v.GetString("mongo_uri")
	cfg.HTTPAddr = v.GetString("http_addr")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that would otherwise fail deep inside
// fm.Build or pkg/batch with a less useful panic.
func (c Config) Validate() error {
	if !(c.Balance > 0 && c.Balance < 1) {
		return errors.Errorf("config: balance factor %v must be in (0,1)", c.Balance)
	}
	if c.Trials < 1 {
		return errors.Errorf("config: trials %d must be >= 1", c.Trials)
	}
	return nil
}
