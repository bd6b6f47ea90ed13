package config

import (
	"flag"
	"os"

	"github.com/Perry5596/ShopAI-sub001/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-l string    HTTP bind address (e.g., ":8080")
//	-a string    gRPC bind address (e.g., ":50051")
//	-q string    quota backend: memory, postgres or redis
//	-d string    PostgreSQL DSN
//	-r string    Redis address
//	-s string    anonymous credential signing secret
//	-k string    account session secret
//	-t duration  anonymous credential TTL (e.g., "720h")
//	-g int       guest quota limit
//	-w duration  guest quota window
//	-m int       account quota limit
//	-n duration  account quota window
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with -c/-config.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-l", "-a", "-q", "-d", "-r", "-s", "-k", "-t", "-g", "-w", "-m", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "l", config.HTTPAddr, "HTTP listen address")
	fs.StringVar(&config.GRPCAddr, "a", config.GRPCAddr, "gRPC listen address")
	fs.StringVar(&config.QuotaBackend, "q", config.QuotaBackend, "quota backend (memory|postgres|redis)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.AnonymousSecret, "s", config.AnonymousSecret, "anonymous credential secret")
	fs.StringVar(&config.AccountSecret, "k", config.AccountSecret, "account session secret")
	fs.DurationVar(&config.AnonymousTTL, "t", config.AnonymousTTL, "anonymous credential TTL")
	fs.IntVar(&config.GuestLimit, "g", config.GuestLimit, "guest quota limit")
	fs.DurationVar(&config.GuestWindow, "w", config.GuestWindow, "guest quota window")
	fs.IntVar(&config.AccountLimit, "m", config.AccountLimit, "account quota limit")
	fs.DurationVar(&config.AccountWindow, "n", config.AccountWindow, "account quota window")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
