package config

import (
	"encoding/json"
	"os"

	"github.com/Perry5596/ShopAI-sub001/internal/flagx"
	"github.com/Perry5596/ShopAI-sub001/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "168h" as well
// as integer nanoseconds. Fields left out of the file keep their current value.
type JsonConfig struct {
	HTTPAddr           string         `json:"http_addr"`
	GRPCAddr           string         `json:"grpc_addr"`
	QuotaBackend       string         `json:"quota_backend"`
	DatabaseDSN        string         `json:"database_dsn"`
	RedisAddr          string         `json:"redis_addr"`
	AnonymousSecret    string         `json:"anonymous_secret"`
	AccountSecret      string         `json:"account_secret"`
	AnonymousTTL       timex.Duration `json:"anonymous_ttl"`
	GuestLimit         int            `json:"guest_limit"`
	GuestWindow        timex.Duration `json:"guest_window"`
	AccountLimit       int            `json:"account_limit"`
	AccountWindow      timex.Duration `json:"account_window"`
	CORSAllowedOrigins []string       `json:"cors_allowed_origins"`
	LogLevel           string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, over config.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.QuotaBackend, c.QuotaBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.AnonymousSecret, c.AnonymousSecret)
	setString(&config.AccountSecret, c.AccountSecret)
	setString(&config.LogLevel, c.LogLevel)

	if c.AnonymousTTL.Duration > 0 {
		config.AnonymousTTL = c.AnonymousTTL.Duration
	}
	if c.GuestLimit > 0 {
		config.GuestLimit = c.GuestLimit
	}
	if c.GuestWindow.Duration > 0 {
		config.GuestWindow = c.GuestWindow.Duration
	}
	if c.AccountLimit > 0 {
		config.AccountLimit = c.AccountLimit
	}
	if c.AccountWindow.Duration > 0 {
		config.AccountWindow = c.AccountWindow.Duration
	}
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
