package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/proactiva/proactiva"
)

// keyValueRepo backs session persistence. Single writer (the UI loop), so
// plain statements without transactions are enough.
type keyValueRepo struct {
	conn *sql.DB
	l    proactiva.Logger
}

var _ proactiva.KeyValueRepo = (*keyValueRepo)(nil)

func NewKeyValueRepo(conn *sql.DB, logger proactiva.Logger) proactiva.KeyValueRepo {
	return &keyValueRepo{
		conn: conn,
		l:    logger,
	}
}

func (r *keyValueRepo) Get(ctx context.Context, key string) (string, error) {
	row := r.conn.QueryRowContext(ctx, "SELECT value FROM keyvalue WHERE key=?", key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", proactiva.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *keyValueRepo) Put(ctx context.Context, key, value string) error {
	query := "INSERT INTO keyvalue (key, value, updated_at) VALUES (?,?,?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at"
	r.l.Debug("storing key", "key", key)
	_, err := r.conn.ExecContext(ctx, query, key, value, time.Now().Unix())
	return err
}

func (r *keyValueRepo) Delete(ctx context.Context, key string) error {
	r.l.Debug("deleting key", "key", key)
	_, err := r.conn.ExecContext(ctx, "DELETE FROM keyvalue WHERE key=?", key)
	return err
}
