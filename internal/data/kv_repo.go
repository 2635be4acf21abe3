package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medipharm/medipharm-console/internal/data/pgxutil"
	"github.com/medipharm/medipharm-console/internal/ports"
)

var (
	_ ports.KeyValueStore = (*KVRepo)(nil)
	_ ports.KeyLister     = (*KVRepo)(nil)
)

// KVRepo implements ports.KeyValueStore on the console_kv table.
// Rows past expires_at are invisible to reads and removed by PurgeExpired.
type KVRepo struct {
	DB           *sql.DB
	ttl          time.Duration
	timeProvider TimeProvider
}

// KVRepoOptions groups constructor parameters.
type KVRepoOptions struct {
	TTL          time.Duration
	TimeProvider TimeProvider
}

// NewKVRepo creates a new KVRepo with the given database connection.
func NewKVRepo(db *sql.DB, opts KVRepoOptions) *KVRepo {
	tp := opts.TimeProvider
	if tp == nil {
		tp = RealTimeProvider{}
	}
	return &KVRepo{DB: db, ttl: opts.TTL, timeProvider: tp}
}

func (r *KVRepo) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ports.ErrKeyNotFound
	}
	var value string
	err := r.DB.QueryRowContext(ctx, `
		SELECT value FROM console_kv
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)
	`, key, r.timeProvider.Now().UTC()).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ports.ErrKeyNotFound
		}
		return "", wrapDBError("kv get", err)
	}
	return value, nil
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	now := r.timeProvider.Now().UTC()
	var expires *time.Time
	if r.ttl > 0 {
		exp := now.Add(r.ttl)
		expires = &exp
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO console_kv (key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at
	`, key, value, expires, now)
	if err != nil {
		return wrapDBError("kv set", err)
	}
	return nil
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM console_kv WHERE key = $1`, key); err != nil {
		return wrapDBError("kv delete", err)
	}
	return nil
}

// Keys lists live keys that start with prefix.
func (r *KVRepo) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT key FROM console_kv
			WHERE key LIKE $1 ESCAPE '\' AND (expires_at IS NULL OR expires_at > $2)
			ORDER BY key
		`, escapeLike(prefix)+"%", r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		keys, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return nil, wrapDBError("kv keys", err)
	}
	return keys, nil
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (r *KVRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM console_kv WHERE expires_at IS NOT NULL AND expires_at <= $1`,
		r.timeProvider.Now().UTC())
	if err != nil {
		return 0, wrapDBError("kv purge", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("kv purge rows affected: %w", err)
	}
	return n, nil
}

func wrapDBError(op string, err error) error {
	if pgxutil.IsUndefinedTable(err) {
		return fmt.Errorf("%s: %w", op, errors.Join(ErrSchemaMissing, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
