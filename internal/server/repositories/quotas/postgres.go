package quotas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Consume is a single upsert. The conflict branch only fires when the window
// has rolled over or there is room left, and Postgres holds the row lock while
// it evaluates that condition, so two callers cannot both take the last unit.
// No returned row means the unit was refused.
func (r *PostgresRepository) Consume(ctx context.Context, subject string, limit, windowSecs, now int64) (Record, bool, error) {
	query :=
		`INSERT INTO quota_records AS q (subject, window_start, count, quota_limit)
		 VALUES ($1, $2, 1, $3)
		 ON CONFLICT (subject) DO UPDATE SET
		     window_start = CASE WHEN $2 - q.window_start >= $4 THEN $2 ELSE q.window_start END,
		     count = CASE WHEN $2 - q.window_start >= $4 THEN 1 ELSE q.count + 1 END,
		     quota_limit = $3,
		     updated_at = now()
		 WHERE $2 - q.window_start >= $4 OR q.count < $3
		 RETURNING window_start, count
		 `

	rec := Record{Subject: subject, Limit: limit}
	err := r.db.QueryRowContext(ctx, query, subject, now, limit, windowSecs).Scan(&rec.WindowStart, &rec.Count)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, fmt.Errorf("db error: %w", err)
	}

	cur, err := r.Get(ctx, subject)
	if err != nil {
		return Record{}, false, err
	}
	return *cur, false, nil
}

func (r *PostgresRepository) Get(ctx context.Context, subject string) (*Record, error) {
	query :=
		`SELECT subject, window_start, count, quota_limit FROM quota_records
		 WHERE subject = $1
		 `

	rec := &Record{}
	err := r.db.QueryRowContext(ctx, query, subject).Scan(&rec.Subject, &rec.WindowStart, &rec.Count, &rec.Limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}
