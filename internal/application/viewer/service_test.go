package viewer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/molscope/molscope/internal/domain/structure"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/prometheus"
	"github.com/molscope/molscope/pkg/errors"
	stypes "github.com/molscope/molscope/pkg/types/structure"
)

const twoAtomPDB = "ATOM      1  N   ALA A   1      11.104  13.207   2.500  1.00 20.00           N\n" +
	"ATOM      2  CA  ALA A   1      12.560  13.207   2.500  1.00 20.00           C\n"

type fakeBlobStore struct {
	objects map[string][]byte
	putErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, content []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = content
	return nil
}

func (f *fakeBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "object not found: "+key)
	}
	return data, nil
}

func (f *fakeBlobStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeBlobStore) List(_ context.Context, _ string) ([]string, error) {
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

type fakeUploadRepo struct {
	saved   []stypes.UploadRecord
	saveErr error
}

func (f *fakeUploadRepo) Save(_ context.Context, rec *stypes.UploadRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *rec)
	return nil
}

func (f *fakeUploadRepo) Recent(_ context.Context, limit int) ([]stypes.UploadRecord, error) {
	if limit > len(f.saved) {
		limit = len(f.saved)
	}
	out := make([]stypes.UploadRecord, 0, limit)
	for i := len(f.saved) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.saved[i])
	}
	return out, nil
}

func (f *fakeUploadRepo) FindByDigest(_ context.Context, digest string) (*stypes.UploadRecord, error) {
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].Digest == digest {
			return &f.saved[i], nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "no upload with digest "+digest)
}

type fakeCache struct {
	values map[string][]byte
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	if f.getErr != nil {
		return f.getErr
	}
	data, ok := f.values[key]
	if !ok {
		return errors.New(errors.CodeNotFound, "cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[key] = data
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.values[key]
	return ok, nil
}

func (f *fakeCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
	loader func(ctx context.Context) (interface{}, error)) error {

	if err := f.Get(ctx, key, dest); err == nil {
		return nil
	} else if f.getErr != nil {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	if err := f.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return f.Get(ctx, key, dest)
}

func (f *fakeCache) Ping(context.Context) error { return nil }

type fakeExamples struct {
	files       map[string][]byte
	defaultName string
}

func (f *fakeExamples) List() []stypes.ExampleEntry {
	out := make([]stypes.ExampleEntry, 0, len(f.files))
	for name, data := range f.files {
		out = append(out, stypes.ExampleEntry{Name: name, Size: int64(len(data))})
	}
	return out
}

func (f *fakeExamples) Load(name string) ([]byte, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, errors.New(errors.CodeExampleNotFound, "example not found: "+name)
	}
	return data, nil
}

func (f *fakeExamples) DefaultName() string { return f.defaultName }

type serviceFixture struct {
	svc      *Service
	blobs    *fakeBlobStore
	uploads  *fakeUploadRepo
	cache    *fakeCache
	examples *fakeExamples
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		blobs:   newFakeBlobStore(),
		uploads: &fakeUploadRepo{},
		cache:   newFakeCache(),
		examples: &fakeExamples{
			files:       map[string][]byte{"1cbs.pdb": []byte(twoAtomPDB)},
			defaultName: "1cbs.pdb",
		},
	}
	f.svc = NewService(Deps{
		Logger:   logging.NewNopLogger(),
		Metrics:  prometheus.NewMetrics(),
		Cache:    f.cache,
		Uploads:  f.uploads,
		Blobs:    f.blobs,
		Examples: f.examples,
	})
	return f
}

func TestIngestAcceptsValidUpload(t *testing.T) {
	f := newServiceFixture()

	payload, err := f.svc.Ingest(context.Background(), "protein.pdb", []byte(twoAtomPDB))
	require.NoError(t, err)

	assert.Equal(t, "protein.pdb", payload.Info.Filename)
	assert.Equal(t, 2, payload.Info.Atoms)
	assert.Equal(t, 1, payload.Info.Residues)
	assert.Equal(t, 1, payload.Info.Chains)
	assert.Equal(t, twoAtomPDB, payload.Content)

	require.Len(t, f.uploads.saved, 1)
	rec := f.uploads.saved[0]
	assert.Equal(t, "protein.pdb", rec.Filename)
	assert.Equal(t, contentDigest([]byte(twoAtomPDB)), rec.Digest)
	assert.Equal(t, 2, rec.Atoms)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	blob, err := f.blobs.Get(context.Background(), rec.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, twoAtomPDB, string(blob))
}

func TestIngestBoundaryRejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantCode errors.ErrorCode
	}{
		{"empty filename", "", []byte(twoAtomPDB), errors.CodeNoFileSelected},
		{"wrong extension", "protein.txt", []byte(twoAtomPDB), errors.CodeInvalidExtension},
		{"invalid utf8", "protein.pdb", []byte{0xff, 0xfe, 0xfd}, errors.CodeDecodeFailure},
		{"no atom records", "protein.pdb", []byte("REMARK nothing here\n"), errors.CodeInvalidContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			_, err := f.svc.Ingest(context.Background(), tt.filename, tt.data)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
			assert.Empty(t, f.uploads.saved)
		})
	}
}

func TestIngestSurvivesPersistenceFailure(t *testing.T) {
	f := newServiceFixture()
	f.blobs.putErr = errors.New(errors.CodeStorageError, "bucket offline")

	payload, err := f.svc.Ingest(context.Background(), "protein.pdb", []byte(twoAtomPDB))
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Info.Atoms)

	// No orphan history row without its blob.
	assert.Empty(t, f.uploads.saved)
}

func TestIngestUsesCachedSummary(t *testing.T) {
	f := newServiceFixture()

	// Seed the cache with deliberately wrong counts to prove it is read.
	digest := contentDigest([]byte(twoAtomPDB))
	require.NoError(t, f.cache.Set(context.Background(), "summary:"+digest,
		stypes.Summary{Atoms: 99, Residues: 9, Chains: 9}, 0))

	payload, err := f.svc.Ingest(context.Background(), "protein.pdb", []byte(twoAtomPDB))
	require.NoError(t, err)
	assert.Equal(t, 99, payload.Info.Atoms)
}

func TestIngestSurvivesCacheFailure(t *testing.T) {
	f := newServiceFixture()
	f.cache.getErr = errors.New(errors.CodeCacheError, "redis offline")

	payload, err := f.svc.Ingest(context.Background(), "protein.pdb", []byte(twoAtomPDB))
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Info.Atoms)
}

func TestLoadExample(t *testing.T) {
	f := newServiceFixture()

	payload, err := f.svc.LoadExample(context.Background(), "1cbs.pdb")
	require.NoError(t, err)
	assert.Equal(t, "1cbs.pdb", payload.Info.Filename)
	assert.Equal(t, 2, payload.Info.Atoms)
	assert.Equal(t, twoAtomPDB, payload.Content)
}

func TestLoadExampleDefaultsWhenNameEmpty(t *testing.T) {
	f := newServiceFixture()

	payload, err := f.svc.LoadExample(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "1cbs.pdb", payload.Info.Filename)
}

func TestLoadExampleUnknownName(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.LoadExample(context.Background(), "missing.pdb")
	require.Error(t, err)
	assert.Equal(t, errors.CodeExampleNotFound, errors.GetCode(err))
}

func TestHistory(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Ingest(context.Background(), "a.pdb", []byte(twoAtomPDB))
	require.NoError(t, err)

	records, err := f.svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a.pdb", records[0].Filename)
}

func TestHistoryWithoutRepository(t *testing.T) {
	svc := NewService(Deps{
		Logger:   logging.NewNopLogger(),
		Metrics:  prometheus.NewMetrics(),
		Examples: &fakeExamples{},
	})

	records, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSummarizePassthrough(t *testing.T) {
	f := newServiceFixture()

	summary := f.svc.Summarize(twoAtomPDB)
	assert.Equal(t, domain.Summarize(twoAtomPDB), summary)
}
