package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssetStore implements canvas.AssetStore using PostgreSQL via pgx.
type AssetStore struct {
	db *pgxpool.Pool
}

// New creates a new AssetStore backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *AssetStore {
	return &AssetStore{db: db}
}
