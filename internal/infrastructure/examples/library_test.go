package examples

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscope/molscope/internal/config"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/pkg/errors"
)

const samplePDB = "ATOM      1  N   ALA A   1      11.104  13.207   2.500  1.00 20.00           N\n"

func newTestLibrary(t *testing.T, cfg config.ExamplesConfig) *Library {
	t.Helper()
	lib, err := NewLibrary(context.Background(), cfg, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestLibraryListAndLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1cbs.pdb"), []byte(samplePDB), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2xyz.pdb"), []byte(samplePDB), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	lib := newTestLibrary(t, config.ExamplesConfig{Dir: dir})

	entries := lib.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "1cbs.pdb", entries[0].Name)
	assert.Equal(t, "2xyz.pdb", entries[1].Name)
	assert.Equal(t, int64(len(samplePDB)), entries[0].Size)

	data, err := lib.Load("1cbs.pdb")
	require.NoError(t, err)
	assert.Equal(t, samplePDB, string(data))
}

func TestLibraryLoadRejectsTraversal(t *testing.T) {
	lib := newTestLibrary(t, config.ExamplesConfig{Dir: t.TempDir()})

	for _, name := range []string{"", "../secret.pdb", "sub/1cbs.pdb", "..\\1cbs.pdb"} {
		_, err := lib.Load(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestLibraryLoadNotFound(t *testing.T) {
	lib := newTestLibrary(t, config.ExamplesConfig{Dir: t.TempDir()})

	_, err := lib.Load("missing.pdb")
	require.Error(t, err)
	assert.Equal(t, errors.CodeExampleNotFound, errors.GetCode(err))

	_, err = lib.Load("notes.txt")
	require.Error(t, err)
	assert.Equal(t, errors.CodeExampleNotFound, errors.GetCode(err))
}

func TestLibraryRefreshPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	lib := newTestLibrary(t, config.ExamplesConfig{Dir: dir})
	assert.Empty(t, lib.List())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.pdb"), []byte(samplePDB), 0o644))
	require.NoError(t, lib.Refresh())

	entries := lib.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "new.pdb", entries[0].Name)
}

func TestLibraryAutoFetchSeedsEmptyDir(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1cbs.pdb" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(samplePDB))
	}))
	defer srv.Close()

	dir := t.TempDir()
	lib := newTestLibrary(t, config.ExamplesConfig{
		Dir:          dir,
		DefaultName:  "1cbs.pdb",
		FetchBaseURL: srv.URL,
		AutoFetch:    true,
	})

	entries := lib.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "1cbs.pdb", entries[0].Name)

	data, err := lib.Load("1cbs.pdb")
	require.NoError(t, err)
	assert.Equal(t, samplePDB, string(data))
}

func TestLibraryAutoFetchSkippedWhenDirPopulated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.pdb"), []byte(samplePDB), 0o644))

	// FetchBaseURL points nowhere reachable; it must not be contacted.
	lib := newTestLibrary(t, config.ExamplesConfig{
		Dir:          dir,
		DefaultName:  "1cbs.pdb",
		FetchBaseURL: "http://127.0.0.1:1",
		AutoFetch:    true,
	})

	entries := lib.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "local.pdb", entries[0].Name)
}
