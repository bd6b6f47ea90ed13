package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
)

const appDirName = "shopai"

// Config holds runtime settings for the guest credential tool.
type Config struct {
	ServerEndpointAddr string
	DatabasePath       string
	KeyPath            string
	RefreshBuffer      time.Duration
	IssueTimeout       time.Duration
	ClearOnSignIn      bool
	LogLevel           string
}

// LoadDefaults populates c with defaults. Local files live under the user's
// config directory, falling back to the working directory when there is none.
func (c *Config) LoadDefaults() {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	dir = filepath.Join(dir, appDirName)

	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabasePath = filepath.Join(dir, "guest.db")
	c.KeyPath = filepath.Join(dir, "sealing.key")
	c.RefreshBuffer = 24 * time.Hour
	c.IssueTimeout = 10 * time.Second
	c.ClearOnSignIn = false
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the JSON file at jsonPath (skipped when
// empty) and the environment.
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if jsonPath != "" {
		if err := parseJson(cfg, jsonPath); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.ServerEndpointAddr == "" {
		errs = append(errs, errors.New("server endpoint address is empty"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	if c.KeyPath == "" {
		errs = append(errs, errors.New("key path is empty"))
	}
	if c.RefreshBuffer < 0 {
		errs = append(errs, fmt.Errorf("refresh buffer %s is negative", c.RefreshBuffer))
	}
	if c.IssueTimeout <= 0 {
		errs = append(errs, fmt.Errorf("issue timeout %s must be positive", c.IssueTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", common.ErrConfiguration, errors.Join(errs...))
	}
	return nil
}
