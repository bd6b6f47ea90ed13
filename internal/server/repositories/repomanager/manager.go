package repomanager

import (
	"context"
	"fmt"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/server/config"
	"github.com/Perry5596/ShopAI-sub001/internal/server/repositories/quotas"
)

// RepositoryManager owns a storage backend and vends repositories bound to it.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Quotas() quotas.Repository
	Close() error
}

// New opens the quota backend selected in cfg and prepares its schema.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)

	switch cfg.QuotaBackend {
	case config.QuotaBackendMemory:
		m = NewMemoryRepositoryManager()
	case config.QuotaBackendPostgres:
		m, err = OpenPostgres(ctx, cfg.DatabaseDSN)
	case config.QuotaBackendRedis:
		m, err = OpenRedis(ctx, cfg.RedisAddr)
	default:
		return nil, fmt.Errorf("%w: unknown quota backend %q", common.ErrConfiguration, cfg.QuotaBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s backend: %w", cfg.QuotaBackend, err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}

// MemoryRepositoryManager keeps everything in process. Single instance only.
type MemoryRepositoryManager struct {
	quotas *quotas.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{quotas: quotas.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Quotas() quotas.Repository         { return m.quotas }
func (m *MemoryRepositoryManager) Close() error                      { return nil }
