// Package viewer implements the upload-and-view application flow: boundary
// validation, summarization, blob storage, history recording, and the
// bundled example library, behind one service facade shared by the HTTP
// handlers and the CLI.
package viewer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	domain "github.com/molscope/molscope/internal/domain/structure"
	"github.com/molscope/molscope/internal/infrastructure/database/redis"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/prometheus"
	"github.com/molscope/molscope/internal/infrastructure/storage/minio"
	"github.com/molscope/molscope/pkg/errors"
	stypes "github.com/molscope/molscope/pkg/types/structure"
)

const summaryCacheTTL = 1 * time.Hour

// ExampleSource is the slice of the example library the service needs.
type ExampleSource interface {
	List() []stypes.ExampleEntry
	Load(name string) ([]byte, error)
	DefaultName() string
}

// Deps collects the service's collaborators. Cache, Uploads, and Blobs may
// be nil: the service then skips caching and persistence, which keeps the
// CLI and degraded deployments functional.
type Deps struct {
	Logger   logging.Logger
	Metrics  *prometheus.Metrics
	Cache    redis.Cache
	Uploads  domain.UploadRepository
	Blobs    minio.BlobStore
	Examples ExampleSource
}

// Service is the upload-and-view application service.
type Service struct {
	deps Deps
}

// NewService wires the service from its collaborators.
func NewService(deps Deps) *Service {
	return &Service{deps: deps}
}

// Ingest runs the full upload pipeline: validate the filename, decode the
// bytes, gate the content, summarize, persist, and build the viewer payload.
// Validation failures return AppErrors with boundary codes; persistence
// failures are logged and do not fail the upload.
func (s *Service) Ingest(ctx context.Context, filename string, data []byte) (*stypes.Payload, error) {
	if err := domain.ValidateFilename(filename); err != nil {
		return nil, s.reject(err)
	}
	text, err := domain.DecodeText(data)
	if err != nil {
		return nil, s.reject(err)
	}
	if err := domain.ValidateContent(text); err != nil {
		return nil, s.reject(err)
	}

	digest := contentDigest(data)
	summary := s.summarize(ctx, digest, text)

	s.deps.Metrics.UploadsTotal.WithLabelValues("accepted").Inc()
	s.deps.Metrics.StructureAtoms.Observe(float64(summary.Atoms))

	s.persist(ctx, filename, digest, data, summary)

	return &stypes.Payload{
		Info: stypes.Info{
			Filename: filename,
			Atoms:    summary.Atoms,
			Residues: summary.Residues,
			Chains:   summary.Chains,
		},
		Content: text,
	}, nil
}

// LoadExample builds the viewer payload for a bundled example. An empty
// name selects the configured default.
func (s *Service) LoadExample(ctx context.Context, name string) (*stypes.Payload, error) {
	if name == "" {
		name = s.deps.Examples.DefaultName()
	}
	data, err := s.deps.Examples.Load(name)
	if err != nil {
		return nil, err
	}
	text, err := domain.DecodeText(data)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateContent(text); err != nil {
		return nil, err
	}

	summary := s.summarize(ctx, contentDigest(data), text)
	s.deps.Metrics.ExampleLoadsTotal.WithLabelValues(name).Inc()

	return &stypes.Payload{
		Info: stypes.Info{
			Filename: name,
			Atoms:    summary.Atoms,
			Residues: summary.Residues,
			Chains:   summary.Chains,
		},
		Content: text,
	}, nil
}

// Examples lists the bundled example structures.
func (s *Service) Examples() []stypes.ExampleEntry {
	return s.deps.Examples.List()
}

// Summarize computes the summary for raw structure text without any
// boundary gates or persistence.
func (s *Service) Summarize(text string) stypes.Summary {
	timer := time.Now()
	summary := domain.Summarize(text)
	s.deps.Metrics.ParseDuration.Observe(time.Since(timer).Seconds())
	return summary
}

// History returns the most recent upload records, newest first. Without a
// configured repository it returns an empty slice.
func (s *Service) History(ctx context.Context, limit int) ([]stypes.UploadRecord, error) {
	if s.deps.Uploads == nil {
		return []stypes.UploadRecord{}, nil
	}
	return s.deps.Uploads.Recent(ctx, limit)
}

// summarize computes the summary via the digest-keyed read-through cache.
// Any cache failure falls back to a direct parse.
func (s *Service) summarize(ctx context.Context, digest, text string) stypes.Summary {
	if s.deps.Cache == nil {
		return s.Summarize(text)
	}

	var summary stypes.Summary
	loaded := false
	err := s.deps.Cache.GetOrSet(ctx, "summary:"+digest, &summary, summaryCacheTTL,
		func(context.Context) (interface{}, error) {
			loaded = true
			return s.Summarize(text), nil
		})
	if err != nil {
		s.deps.Logger.Warn("summary cache unavailable",
			logging.String("digest", digest), logging.Err(err))
		s.deps.Metrics.SummaryCacheMisses.Inc()
		return s.Summarize(text)
	}
	if loaded {
		s.deps.Metrics.SummaryCacheMisses.Inc()
	} else {
		s.deps.Metrics.SummaryCacheHits.Inc()
	}
	return summary
}

// persist stores the raw blob and the history row. Both are best-effort.
func (s *Service) persist(ctx context.Context, filename, digest string, data []byte, summary stypes.Summary) {
	if s.deps.Blobs == nil || s.deps.Uploads == nil {
		return
	}

	id := uuid.NewString()
	objectKey := "uploads/" + id + ".pdb"

	if err := s.deps.Blobs.Put(ctx, objectKey, data); err != nil {
		s.deps.Logger.Warn("failed to store upload blob",
			logging.String("object_key", objectKey), logging.Err(err))
		return
	}

	rec := &stypes.UploadRecord{
		ID:        id,
		Filename:  filename,
		Digest:    digest,
		ObjectKey: objectKey,
		Atoms:     summary.Atoms,
		Residues:  summary.Residues,
		Chains:    summary.Chains,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.deps.Uploads.Save(ctx, rec); err != nil {
		s.deps.Logger.Warn("failed to record upload history",
			logging.String("id", id), logging.Err(err))
	}
}

func (s *Service) reject(err error) error {
	code := string(errors.GetCode(err))
	s.deps.Metrics.UploadsTotal.WithLabelValues("rejected").Inc()
	s.deps.Metrics.UploadRejections.WithLabelValues(code).Inc()
	return err
}

func contentDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
