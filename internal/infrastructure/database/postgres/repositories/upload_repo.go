// Package repositories holds the pgx-backed implementations of the domain
// repository interfaces.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/pkg/errors"
	stypes "github.com/molscope/molscope/pkg/types/structure"
)

const defaultHistoryLimit = 50

// UploadRepository persists upload-history rows in the uploads table.
type UploadRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewUploadRepository builds a repository over an established pool.
func NewUploadRepository(pool *pgxpool.Pool, log logging.Logger) *UploadRepository {
	return &UploadRepository{pool: pool, logger: log}
}

// Save inserts one upload record.
func (r *UploadRepository) Save(ctx context.Context, rec *stypes.UploadRecord) error {
	const query = `
		INSERT INTO uploads (id, filename, digest, object_key, atoms, residues, chains, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.Filename, rec.Digest, rec.ObjectKey,
		rec.Atoms, rec.Residues, rec.Chains, rec.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to save upload record")
	}
	return nil
}

// Recent returns up to limit records, newest first. A non-positive limit
// falls back to the default.
func (r *UploadRepository) Recent(ctx context.Context, limit int) ([]stypes.UploadRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	const query = `
		SELECT id, filename, digest, object_key, atoms, residues, chains, created_at
		FROM uploads
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to query upload history")
	}
	defer rows.Close()

	records := make([]stypes.UploadRecord, 0, limit)
	for rows.Next() {
		var rec stypes.UploadRecord
		if err := rows.Scan(
			&rec.ID, &rec.Filename, &rec.Digest, &rec.ObjectKey,
			&rec.Atoms, &rec.Residues, &rec.Chains, &rec.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to scan upload record")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to iterate upload history")
	}
	return records, nil
}

// FindByDigest returns the most recent record with the given content digest.
func (r *UploadRepository) FindByDigest(ctx context.Context, digest string) (*stypes.UploadRecord, error) {
	const query = `
		SELECT id, filename, digest, object_key, atoms, residues, chains, created_at
		FROM uploads
		WHERE digest = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var rec stypes.UploadRecord
	err := r.pool.QueryRow(ctx, query, digest).Scan(
		&rec.ID, &rec.Filename, &rec.Digest, &rec.ObjectKey,
		&rec.Atoms, &rec.Residues, &rec.Chains, &rec.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, errors.New(errors.CodeNotFound, "no upload with digest "+digest)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to query upload by digest")
	}
	return &rec, nil
}
