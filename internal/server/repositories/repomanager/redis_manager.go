package repomanager

import (
	"context"

	"github.com/Perry5596/ShopAI-sub001/internal/server/repositories/quotas"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type RedisRepositoryManager struct {
	cli redis.UniversalClient
}

// OpenRedis connects to addr and pings it.
func OpenRedis(ctx context.Context, addr string) (*RedisRepositoryManager, error) {
	cli := redis.NewClient(&redis.Options{Addr: addr})
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, errors.WithMessage(err, "ping")
	}
	return NewRedisRepositoryManager(cli), nil
}

func NewRedisRepositoryManager(cli redis.UniversalClient) *RedisRepositoryManager {
	return &RedisRepositoryManager{cli: cli}
}

// RunMigrations is a no-op: Redis keys need no schema.
func (m *RedisRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *RedisRepositoryManager) Quotas() quotas.Repository {
	return quotas.NewRedisRepository(m.cli)
}

func (m *RedisRepositoryManager) Close() error {
	return m.cli.Close()
}
