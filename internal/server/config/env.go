package config

import (
	"os"
	"strings"

	"github.com/Perry5596/ShopAI-sub001/internal/flagx"
)

const (
	envHTTPAddr        = "SHOPAI_HTTP_ADDR"
	envGRPCAddr        = "SHOPAI_GRPC_ADDR"
	envQuotaBackend    = "SHOPAI_QUOTA_BACKEND"
	envDatabaseDSN     = "SHOPAI_DATABASE_DSN"
	envRedisAddr       = "SHOPAI_REDIS_ADDR"
	envAnonymousSecret = "SHOPAI_ANON_SECRET"
	envAccountSecret   = "SHOPAI_ACCOUNT_SECRET"
	envAnonymousTTL    = "SHOPAI_ANON_TTL"
	envGuestLimit      = "SHOPAI_GUEST_LIMIT"
	envGuestWindow     = "SHOPAI_GUEST_WINDOW"
	envAccountLimit    = "SHOPAI_ACCOUNT_LIMIT"
	envAccountWindow   = "SHOPAI_ACCOUNT_WINDOW"
	envCORSOrigins     = "SHOPAI_CORS_ORIGINS"
	envLogLevel        = "SHOPAI_LOG_LEVEL"
)

// parseEnv overlays variables that are set and non-empty. Secrets are meant
// to arrive this way.
func parseEnv(c *Config) error {
	flagx.EnvString(&c.HTTPAddr, envHTTPAddr)
	flagx.EnvString(&c.GRPCAddr, envGRPCAddr)
	flagx.EnvString(&c.QuotaBackend, envQuotaBackend)
	flagx.EnvString(&c.DatabaseDSN, envDatabaseDSN)
	flagx.EnvString(&c.RedisAddr, envRedisAddr)
	flagx.EnvString(&c.AnonymousSecret, envAnonymousSecret)
	flagx.EnvString(&c.AccountSecret, envAccountSecret)
	flagx.EnvString(&c.LogLevel, envLogLevel)

	if v := os.Getenv(envCORSOrigins); v != "" {
		c.CORSAllowedOrigins = splitList(v)
	}

	if err := flagx.EnvDuration(&c.AnonymousTTL, envAnonymousTTL); err != nil {
		return err
	}
	if err := flagx.EnvInt(&c.GuestLimit, envGuestLimit); err != nil {
		return err
	}
	if err := flagx.EnvDuration(&c.GuestWindow, envGuestWindow); err != nil {
		return err
	}
	if err := flagx.EnvInt(&c.AccountLimit, envAccountLimit); err != nil {
		return err
	}
	return flagx.EnvDuration(&c.AccountWindow, envAccountWindow)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
