// Package repository provides fingerprint stores backed by PostgreSQL,
// Redis and process memory.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PostgresFingerprintRepository stores fingerprints in the fingerprints table.
type PostgresFingerprintRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresFingerprintRepository creates a repository on top of db.
// db must be a valid *sql.DB connected to a PostgreSQL instance with the
// schema from db.InitPostgres.
func NewPostgresFingerprintRepository(db *sql.DB) *PostgresFingerprintRepository {
	return &PostgresFingerprintRepository{DB: db}
}

// Exists reports whether hash has been recorded.
func (r *PostgresFingerprintRepository) Exists(ctx context.Context, hash string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM fingerprints WHERE hash = $1)`,
		hash,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check fingerprint: %w", err)
	}
	return exists, nil
}

// Record stores hash. The ON CONFLICT clause makes repeated calls a no-op.
func (r *PostgresFingerprintRepository) Record(ctx context.Context, hash string) error {
	if _, err := r.insert(ctx, hash); err != nil {
		return fmt.Errorf("record fingerprint: %w", err)
	}
	return nil
}

// Claim stores hash and reports whether this call inserted it. The unique
// constraint on hash makes the check and the insert a single atomic step.
func (r *PostgresFingerprintRepository) Claim(ctx context.Context, hash string) (bool, error) {
	res, err := r.insert(ctx, hash)
	if err != nil {
		return false, fmt.Errorf("claim fingerprint: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim fingerprint: %w", err)
	}
	return rows == 1, nil
}

// Count returns the number of recorded fingerprints.
func (r *PostgresFingerprintRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM fingerprints`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count fingerprints: %w", err)
	}
	return n, nil
}

func (r *PostgresFingerprintRepository) insert(ctx context.Context, hash string) (sql.Result, error) {
	return r.DB.ExecContext(
		ctx,
		`INSERT INTO fingerprints (id, hash) VALUES ($1, $2) ON CONFLICT (hash) DO NOTHING`,
		uuid.NewString(),
		hash,
	)
}
