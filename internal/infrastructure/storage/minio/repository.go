package minio

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/molscope/molscope/pkg/errors"
)

const pdbContentType = "chemical/x-pdb"

// BlobStore is the object-storage contract the application layer depends on.
type BlobStore interface {
	// Put stores content under key, overwriting any existing object.
	Put(ctx context.Context, key string, content []byte) error

	// Get returns the full content stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns all object keys with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Repository implements BlobStore on a bucket-bound client.
type Repository struct {
	client *Client
}

// NewRepository builds a BlobStore over an established client.
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Put(ctx context.Context, key string, content []byte) error {
	_, err := r.client.Raw().PutObject(ctx, r.client.Bucket(), key,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: pdbContentType})
	if err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "failed to store object "+key)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := r.client.Raw().GetObject(ctx, r.client.Bucket(), key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorageError, "failed to open object "+key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, errors.New(errors.CodeNotFound, "object not found: "+key)
		}
		return nil, errors.Wrap(err, errors.CodeStorageError, "failed to read object "+key)
	}
	return data, nil
}

func (r *Repository) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.client.Raw().StatObject(ctx, r.client.Bucket(), key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(err, errors.CodeStorageError, "failed to stat object "+key)
	}
	return true, nil
}

func (r *Repository) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range r.client.Raw().ListObjects(ctx, r.client.Bucket(),
		minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.CodeStorageError, "failed to list objects")
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
