package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/server/config"
	"github.com/Perry5596/ShopAI-sub001/internal/server/repositories/quotas"
	"github.com/alicebob/miniredis/v2"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestManagers_SatisfyInterface(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var _ RepositoryManager = NewPostgresRepositoryManager(db)
	var _ RepositoryManager = NewMemoryRepositoryManager()
	var _ RepositoryManager = &RedisRepositoryManager{}
}

func TestPostgres_QuotasIsPostgresRepo(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager(db)
	if _, ok := m.Quotas().(*quotas.PostgresRepository); !ok {
		t.Fatalf("Quotas() returned %T", m.Quotas())
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestNew_Memory(t *testing.T) {
	m, err := New(context.Background(), &config.Config{QuotaBackend: config.QuotaBackendMemory})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer m.Close()

	if _, ok := m.Quotas().(*quotas.MemoryRepository); !ok {
		t.Fatalf("Quotas() returned %T", m.Quotas())
	}
}

func TestNew_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	m, err := New(context.Background(), &config.Config{QuotaBackend: config.QuotaBackendRedis, RedisAddr: mr.Addr()})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer m.Close()

	if _, _, err := m.Quotas().Consume(context.Background(), "anon:a", 1, 60, 1); err != nil {
		t.Fatalf("Consume error: %v", err)
	}
	if !mr.Exists("quota:anon:a") {
		t.Fatal("expected key in redis")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), &config.Config{QuotaBackend: "etcd"})
	if !errors.Is(err, common.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
