package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgSnapshotRepository guarda el snapshot en la tabla kv_store (ver db.Migrate).
type PgSnapshotRepository struct {
	pool pgQuerier
	key  string
}

func NewPgSnapshotRepository(pool *pgxpool.Pool, key string) *PgSnapshotRepository {
	return &PgSnapshotRepository{pool: pool, key: key}
}

func (r *PgSnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	const query = `
		SELECT value
		FROM kv_store
		WHERE key = $1
	`
	var data []byte
	err := r.pool.QueryRow(ctx, query, r.key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return data, nil
}

func (r *PgSnapshotRepository) Save(ctx context.Context, data []byte) error {
	const query = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, r.key, data); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
