// Package server wires the identity server together: configuration, quota
// storage, the anonymous credential codec and both front doors (gRPC and
// HTTP), and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/logging"
	"github.com/Perry5596/ShopAI-sub001/internal/server/auth"
	"github.com/Perry5596/ShopAI-sub001/internal/server/config"
	"github.com/Perry5596/ShopAI-sub001/internal/server/httpapi"
	"github.com/Perry5596/ShopAI-sub001/internal/server/identity"
	"github.com/Perry5596/ShopAI-sub001/internal/server/quota"
	"github.com/Perry5596/ShopAI-sub001/internal/server/repositories/repomanager"
	"github.com/Perry5596/ShopAI-sub001/internal/server/token"

	gs "github.com/Perry5596/ShopAI-sub001/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   *logging.SlogLogger
	repos    repomanager.RepositoryManager
	issuer   *identity.Issuer
	resolver *identity.Resolver
	ledger   *quota.Ledger
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, logging.ParseLevel(c.LogLevel))

	codec, err := token.NewCodec([]byte(c.AnonymousSecret))
	if err != nil {
		return nil, err
	}

	var accounts identity.AccountVerifier
	if c.AccountSecret != "" {
		accounts = auth.NewVerifier([]byte(c.AccountSecret), nil)
	} else {
		logger.Warn(ctx, "no account secret configured, bearer sessions will be ignored")
	}

	repos, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("quota store init error: %w", err)
	}

	ledger, err := quota.NewLedger(repos.Quotas(),
		quota.Policy{Limit: int64(c.GuestLimit), Window: c.GuestWindow},
		quota.Policy{Limit: int64(c.AccountLimit), Window: c.AccountWindow},
		logger,
	)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	return &App{
		config:   c,
		logger:   logger,
		repos:    repos,
		issuer:   identity.NewIssuer(codec, c.AnonymousTTL, logger),
		resolver: identity.NewResolver(accounts, codec, logger),
		ledger:   ledger,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.issuer, app.resolver, app.ledger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.New(&httpapi.HTTPServerConfig{
		ListenAddr:               app.config.HTTPAddr,
		AllowedOrigins:           app.config.CORSAllowedOrigins,
		GracefulShutdownDuration: 10 * time.Second,
		ReadTimeout:              10 * time.Second,
		WriteTimeout:             10 * time.Second,
	}, app.logger, app.issuer, app.resolver, app.ledger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "quota_backend", app.config.QuotaBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "closing quota store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
