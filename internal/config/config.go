package config

// Optional YAML configuration for timewarp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AndrewLester/timewarp/internal/clock"
	"github.com/AndrewLester/timewarp/internal/privilege"
	"github.com/AndrewLester/timewarp/internal/skew"
	"github.com/AndrewLester/timewarp/internal/sugar"
)

type Config struct {
	NTPServer       string        `yaml:"ntp_server"`
	DarwinNTPServer string        `yaml:"darwin_ntp_server"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
	ReportSkew      *bool         `yaml:"report_skew,omitempty"`
}

func Default() *Config {
	reportSkew := true
	return &Config{
		NTPServer:       clock.DefaultNTPServer,
		DarwinNTPServer: clock.DefaultDarwinNTPServer,
		RefreshInterval: privilege.DefaultRefreshInterval,
		QueryTimeout:    skew.DefaultTimeout,
		ReportSkew:      &reportSkew,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(err, path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, wrapError(err, path)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.NTPServer == "" {
		return fmt.Errorf("ntp_server must not be empty")
	}
	if c.DarwinNTPServer == "" {
		return fmt.Errorf("darwin_ntp_server must not be empty")
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RefreshInterval)
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("query_timeout must be positive, got %s", c.QueryTimeout)
	}
	return nil
}

func (c *Config) SkewEnabled() bool {
	return c.ReportSkew == nil || *c.ReportSkew
}

func wrapError(err error, path string) error {
	return sugar.UserError{
		Message: fmt.Sprintf("Configuration error in %s", path),
		Hint:    "All keys are optional; durations use Go syntax such as 60s or 1m30s",
		Err:     err,
	}
}
