package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"google.golang.org/grpc"

	"github.com/Perry5596/ShopAI-sub001/internal/client/client"
	"github.com/Perry5596/ShopAI-sub001/internal/client/config"
	"github.com/Perry5596/ShopAI-sub001/internal/client/repositories/credentials"
	"github.com/Perry5596/ShopAI-sub001/internal/client/services"
	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/cryptox"
	"github.com/Perry5596/ShopAI-sub001/internal/logging"

	_ "modernc.org/sqlite"
)

// App owns the open resources behind one command invocation.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	client  *client.GRPCClient
	manager *services.CredentialManager
}

func NewApp(ctx context.Context, c *config.Config, dialOpts ...grpc.DialOption) (*App, error) {
	logger := logging.NewText(os.Stderr, logging.ParseLevel(c.LogLevel))

	key, err := cryptox.LoadOrCreateKey(c.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("sealing key: %w", err)
	}
	sealer, err := cryptox.NewSealer(key)
	// the cipher keeps its own copy
	common.Wipe(key)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, dialOpts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	manager := services.NewCredentialManager(
		credentials.NewSQLiteRepository(db, sealer),
		apiClient,
		c.RefreshBuffer,
		logger,
		services.WithIssueTimeout(c.IssueTimeout),
		services.WithClearOnSignIn(c.ClearOnSignIn),
	)
	apiClient.UseCredentials(manager)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		client:  apiClient,
		manager: manager,
	}, nil
}

func (a *App) Close() error {
	return errors.Join(a.client.Close(), a.db.Close())
}
