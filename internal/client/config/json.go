package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/timex"
)

// JsonConfig is the on-disk form of Config. Absent fields keep their value.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	DatabasePath       string         `json:"database_path"`
	KeyPath            string         `json:"key_path"`
	RefreshBuffer      timex.Duration `json:"refresh_buffer"`
	IssueTimeout       timex.Duration `json:"issue_timeout"`
	ClearOnSignIn      *bool          `json:"clear_on_sign_in"`
	LogLevel           string         `json:"log_level"`
}

func parseJson(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", common.ErrConfiguration, path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("%w: parse %s: %w", common.ErrConfiguration, path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeyPath != "" {
		cfg.KeyPath = jc.KeyPath
	}
	if jc.RefreshBuffer.Duration > 0 {
		cfg.RefreshBuffer = jc.RefreshBuffer.Duration
	}
	if jc.IssueTimeout.Duration > 0 {
		cfg.IssueTimeout = jc.IssueTimeout.Duration
	}
	if jc.ClearOnSignIn != nil {
		cfg.ClearOnSignIn = *jc.ClearOnSignIn
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
