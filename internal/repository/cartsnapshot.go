package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suudhaa/grocer-api/internal/domain/cart"
)

const (
	getCartSnapshotSQL = `SELECT data FROM cart_snapshots WHERE session_key = $1`

	upsertCartSnapshotSQL = `INSERT INTO cart_snapshots (session_key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
)

var _ cart.Snapshots = (*CartSnapshotRepository)(nil)

// CartSnapshotRepository is the durable key-value slot carts are mirrored
// to, backed by a single JSONB table.
type CartSnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewCartSnapshotRepository returns a CartSnapshotRepository that uses the
// given pool.
func NewCartSnapshotRepository(pool *pgxpool.Pool) *CartSnapshotRepository {
	return &CartSnapshotRepository{pool: pool}
}

// Get returns the stored snapshot for the session key, or nil when absent.
func (r *CartSnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, getCartSnapshotSQL, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting cart snapshot %q: %w", key, err)
	}
	return data, nil
}

// Set stores the snapshot for the session key, replacing any previous one.
func (r *CartSnapshotRepository) Set(ctx context.Context, key string, data []byte) error {
	_, err := r.pool.Exec(ctx, upsertCartSnapshotSQL, key, data)
	if err != nil {
		return fmt.Errorf("storing cart snapshot %q: %w", key, err)
	}
	return nil
}
