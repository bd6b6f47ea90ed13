package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Perry5596/ShopAI-sub001/internal/flagx"
)

const (
	envServerEndpointAddr = "SHOPAI_CLIENT_SERVER_ADDR"
	envDatabasePath       = "SHOPAI_CLIENT_DB"
	envKeyPath            = "SHOPAI_CLIENT_KEY"
	envRefreshBuffer      = "SHOPAI_CLIENT_REFRESH_BUFFER"
	envIssueTimeout       = "SHOPAI_CLIENT_ISSUE_TIMEOUT"
	envClearOnSignIn      = "SHOPAI_CLIENT_CLEAR_ON_SIGN_IN"
	envLogLevel           = "SHOPAI_CLIENT_LOG_LEVEL"
)

func parseEnv(c *Config) error {
	flagx.EnvString(&c.ServerEndpointAddr, envServerEndpointAddr)
	flagx.EnvString(&c.DatabasePath, envDatabasePath)
	flagx.EnvString(&c.KeyPath, envKeyPath)
	flagx.EnvString(&c.LogLevel, envLogLevel)

	if err := flagx.EnvDuration(&c.RefreshBuffer, envRefreshBuffer); err != nil {
		return err
	}
	if err := flagx.EnvDuration(&c.IssueTimeout, envIssueTimeout); err != nil {
		return err
	}

	if v := os.Getenv(envClearOnSignIn); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envClearOnSignIn, err)
		}
		c.ClearOnSignIn = b
	}
	return nil
}
