package structure

import (
	"context"

	stypes "github.com/molscope/molscope/pkg/types/structure"
)

// UploadRepository persists the metadata row recorded for each accepted
// upload. The raw PDB blob itself lives in object storage, keyed by
// UploadRecord.ObjectKey.
type UploadRepository interface {
	// Save inserts one upload record.
	Save(ctx context.Context, rec *stypes.UploadRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]stypes.UploadRecord, error)

	// FindByDigest returns the most recent record with the given content
	// digest, or a not-found error.
	FindByDigest(ctx context.Context, digest string) (*stypes.UploadRecord, error)
}
