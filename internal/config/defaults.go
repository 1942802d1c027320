package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":8080",
		SearchDir:  "searches",
		DBPath:     "osintdash.db",
		HTTP: HTTPConfig{
			ProfileTimeout: 8 * time.Second,
			QuickTimeout:   5 * time.Second,
			SiteTimeout:    10 * time.Second,
			GeoIPInterval:  1500 * time.Millisecond,
			GeoIPMaxIPs:    10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// WriteDefault writes a default configuration to the specified path
func WriteDefault(path string) error {
	cfg := DefaultConfig()

	out := struct {
		ListenAddr string `yaml:"listen_addr"`
		SearchDir  string `yaml:"search_dir"`
		DBPath     string `yaml:"db_path"`
		HTTP       struct {
			ProfileTimeout string `yaml:"profile_timeout"`
			QuickTimeout   string `yaml:"quick_timeout"`
			SiteTimeout    string `yaml:"site_timeout"`
			GeoIPInterval  string `yaml:"geoip_interval"`
			GeoIPMaxIPs    int    `yaml:"geoip_max_ips"`
		} `yaml:"http"`
		Log LogConfig `yaml:"log"`
	}{
		ListenAddr: cfg.ListenAddr,
		SearchDir:  cfg.SearchDir,
		DBPath:     cfg.DBPath,
		Log:        cfg.Log,
	}
	out.HTTP.ProfileTimeout = cfg.HTTP.ProfileTimeout.String()
	out.HTTP.QuickTimeout = cfg.HTTP.QuickTimeout.String()
	out.HTTP.SiteTimeout = cfg.HTTP.SiteTimeout.String()
	out.HTTP.GeoIPInterval = cfg.HTTP.GeoIPInterval.String()
	out.HTTP.GeoIPMaxIPs = cfg.HTTP.GeoIPMaxIPs

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
