// Package minio stores raw PDB blobs in S3-compatible object storage, keyed
// by the object key recorded in the upload-history row.
package minio

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/molscope/molscope/internal/config"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/pkg/errors"
)

// Client wraps a minio client bound to one bucket.
type Client struct {
	mc     *minio.Client
	bucket string
	logger logging.Logger
}

// NewClient connects to the object store and creates the configured bucket
// if it does not exist yet.
func NewClient(ctx context.Context, cfg config.MinIOConfig, log logging.Logger) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorageError, "failed to create object storage client")
	}

	c := &Client{mc: mc, bucket: cfg.Bucket, logger: log}
	if err := c.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	log.Info("connected to object storage",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
	)
	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context, region string) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "failed to check bucket")
	}
	if exists {
		return nil
	}
	err = c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: region})
	if err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "failed to create bucket")
	}
	c.logger.Info("created bucket", logging.String("bucket", c.bucket))
	return nil
}

// Raw returns the underlying minio client.
func (c *Client) Raw() *minio.Client { return c.mc }

// Bucket returns the bucket name the client is bound to.
func (c *Client) Bucket() string { return c.bucket }

// Name implements the health-checker contract.
func (c *Client) Name() string { return "minio" }

// Check implements the health-checker contract.
func (c *Client) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := c.mc.BucketExists(ctx, c.bucket)
	return err
}
