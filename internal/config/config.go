package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hakim/osintdash/internal/ratelimit"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	ListenAddr string                         `mapstructure:"listen_addr"`
	SearchDir  string                         `mapstructure:"search_dir"`
	DBPath     string                         `mapstructure:"db_path"`
	HTTP       HTTPConfig                     `mapstructure:"http"`
	Log        LogConfig                      `mapstructure:"log"`
	RateLimits map[string]ratelimit.APIConfig `mapstructure:"rate_limits"`
}

// HTTPConfig contains outbound request budgets for the aggregator
type HTTPConfig struct {
	// ProfileTimeout bounds each platform profile check.
	ProfileTimeout time.Duration `mapstructure:"profile_timeout"`
	// QuickTimeout bounds paste-site, footprint and spam-report checks.
	QuickTimeout time.Duration `mapstructure:"quick_timeout"`
	// SiteTimeout bounds the full-site fetch used for tech fingerprinting.
	SiteTimeout time.Duration `mapstructure:"site_timeout"`
	// GeoIPInterval is the minimum spacing between geolocation requests.
	GeoIPInterval time.Duration `mapstructure:"geoip_interval"`
	// GeoIPMaxIPs caps how many unique IPs are geolocated per search.
	GeoIPMaxIPs int `mapstructure:"geoip_max_ips"`
}

// LogConfig controls structured logging output
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads and parses configuration from a YAML file
// If path is empty, searches for osintdash.yaml in current directory and ~/.config/osintdash/
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		// Use explicit path
		v.SetConfigFile(path)
	} else {
		// Search for config in default locations
		v.SetConfigName("osintdash")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "osintdash"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr cannot be empty"))
	}

	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path cannot be empty"))
	}

	if c.SearchDir == "" {
		errs = append(errs, errors.New("search_dir cannot be empty"))
	}

	if c.HTTP.ProfileTimeout <= 0 {
		errs = append(errs, errors.New("http.profile_timeout must be positive"))
	}

	if c.HTTP.QuickTimeout <= 0 {
		errs = append(errs, errors.New("http.quick_timeout must be positive"))
	}

	if c.HTTP.SiteTimeout <= 0 {
		errs = append(errs, errors.New("http.site_timeout must be positive"))
	}

	if c.HTTP.GeoIPInterval <= 0 {
		errs = append(errs, errors.New("http.geoip_interval must be positive"))
	}

	if c.HTTP.GeoIPMaxIPs <= 0 {
		errs = append(errs, errors.New("http.geoip_max_ips must be positive"))
	}

	for key, api := range c.RateLimits {
		if api.DailyLimit < 0 {
			errs = append(errs, fmt.Errorf("rate_limits.%s.daily_limit cannot be negative", key))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// APIs returns the effective quota table: built-in defaults with any
// configured overrides applied.
func (c *Config) APIs() []ratelimit.APIConfig {
	return ratelimit.MergeOverrides(c.RateLimits)
}
