package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/cryptox"
	"github.com/Perry5596/ShopAI-sub001/internal/dbx"
)

const (
	fieldToken     = "token"
	fieldSubjectID = "subject_id"
	fieldExpiresAt = "expires_at"
)

// SQLiteRepository keeps the credential in the credential_fields table. The
// token is sealed with the subject id as associated data, so a token can not
// be paired with another subject's record.
type SQLiteRepository struct {
	db     *sql.DB
	sealer *cryptox.Sealer
}

func NewSQLiteRepository(db *sql.DB, sealer *cryptox.Sealer) *SQLiteRepository {
	return &SQLiteRepository{db: db, sealer: sealer}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*StoredCredential, error) {
	var sealed, subject, expires []byte

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		f := fields{db: tx}
		var err error
		if sealed, err = f.get(ctx, fieldToken); err != nil {
			return err
		}
		if subject, err = f.get(ctx, fieldSubjectID); err != nil {
			return err
		}
		expires, err = f.get(ctx, fieldExpiresAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	if sealed == nil && subject == nil && expires == nil {
		return nil, nil
	}
	if sealed == nil || subject == nil || expires == nil {
		return nil, fmt.Errorf("%w: missing fields", ErrCorrupt)
	}

	token, err := r.sealer.Open(sealed, subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	exp, err := strconv.ParseInt(string(expires), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: expires_at: %w", ErrCorrupt, err)
	}

	return &StoredCredential{
		Token:     string(token),
		SubjectID: string(subject),
		ExpiresAt: time.Unix(exp, 0).UTC(),
	}, nil
}

// Save replaces whatever is stored in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, c StoredCredential) error {
	sealed, err := r.sealer.Seal([]byte(c.Token), []byte(c.SubjectID))
	if err != nil {
		return fmt.Errorf("seal credential: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		f := fields{db: tx}
		if err := f.set(ctx, fieldToken, sealed); err != nil {
			return err
		}
		if err := f.set(ctx, fieldSubjectID, []byte(c.SubjectID)); err != nil {
			return err
		}
		return f.set(ctx, fieldExpiresAt, []byte(strconv.FormatInt(c.ExpiresAt.Unix(), 10)))
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return fields{db: r.db}.clear(ctx)
}

// fields is the key/value layer under the repository. It runs on either the
// database or a transaction.
type fields struct {
	db dbx.DBTX
}

func (f fields) get(ctx context.Context, name string) ([]byte, error) {
	var value []byte
	err := f.db.QueryRowContext(ctx, `SELECT value FROM credential_fields WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential field[%s]: %w", name, err)
	}
	return value, nil
}

func (f fields) set(ctx context.Context, name string, value []byte) error {
	_, err := f.db.ExecContext(ctx, `
		INSERT INTO credential_fields (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to set credential field[%s]: %w", name, err)
	}
	return nil
}

func (f fields) clear(ctx context.Context) error {
	_, err := f.db.ExecContext(ctx, `DELETE FROM credential_fields`)
	if err != nil {
		return fmt.Errorf("failed to clear credential fields: %w", err)
	}
	return nil
}
