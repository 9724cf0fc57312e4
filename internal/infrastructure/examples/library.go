// Package examples manages the bundled example structure library: a local
// directory of .pdb files, optionally seeded from a remote file host on
// startup and refreshed by a filesystem watcher.
package examples

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/molscope/molscope/internal/config"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/pkg/errors"
	stypes "github.com/molscope/molscope/pkg/types/structure"
)

const fetchTimeout = 30 * time.Second

// Library serves the bundled example structures from a local directory.
// Listing is cached in memory and refreshed by the watcher or on demand.
type Library struct {
	cfg    config.ExamplesConfig
	logger logging.Logger
	client *http.Client

	mu      sync.RWMutex
	entries []stypes.ExampleEntry

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewLibrary creates the example directory if needed, seeds the default
// example when the directory is empty and auto-fetch is enabled, and loads
// the initial listing.
func NewLibrary(ctx context.Context, cfg config.ExamplesConfig, log logging.Logger) (*Library, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create examples directory")
	}

	l := &Library{
		cfg:    cfg,
		logger: log,
		client: &http.Client{Timeout: fetchTimeout},
		done:   make(chan struct{}),
	}

	if err := l.Refresh(); err != nil {
		return nil, err
	}

	if len(l.List()) == 0 && cfg.AutoFetch && cfg.DefaultName != "" {
		if err := l.fetchDefault(ctx); err != nil {
			// A missing default example degrades the library, it does
			// not prevent the service from starting.
			log.Warn("failed to fetch default example",
				logging.String("name", cfg.DefaultName), logging.Err(err))
		} else if err := l.Refresh(); err != nil {
			return nil, err
		}
	}

	if cfg.Watch {
		if err := l.startWatcher(); err != nil {
			log.Warn("example directory watcher unavailable", logging.Err(err))
		}
	}

	return l, nil
}

// List returns the cached listing, sorted by name.
func (l *Library) List() []stypes.ExampleEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]stypes.ExampleEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Load returns the content of the named example. The name must be a bare
// .pdb filename; path separators are rejected.
func (l *Library) Load(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, errors.New(errors.CodeBadRequest, "invalid example name")
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdb") {
		return nil, errors.New(errors.CodeExampleNotFound, "example not found: "+name)
	}
	data, err := os.ReadFile(filepath.Join(l.cfg.Dir, name))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.CodeExampleNotFound, "example not found: "+name)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to read example "+name)
	}
	return data, nil
}

// DefaultName returns the configured default example name.
func (l *Library) DefaultName() string {
	return l.cfg.DefaultName
}

// Refresh rescans the directory and replaces the cached listing.
func (l *Library) Refresh() error {
	dirEntries, err := os.ReadDir(l.cfg.Dir)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to scan examples directory")
	}

	entries := make([]stypes.ExampleEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".pdb") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, stypes.ExampleEntry{Name: de.Name(), Size: info.Size()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return nil
}

// Close stops the directory watcher.
func (l *Library) Close() error {
	close(l.done)
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}

func (l *Library) fetchDefault(ctx context.Context) error {
	url := strings.TrimRight(l.cfg.FetchBaseURL, "/") + "/" + l.cfg.DefaultName
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeExampleFetchFailed, "failed to build fetch request")
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeExampleFetchFailed, "fetch request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.CodeExampleFetchFailed,
			fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, url))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.CodeExampleFetchFailed, "failed to read fetch response")
	}

	dest := filepath.Join(l.cfg.Dir, l.cfg.DefaultName)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write example file")
	}

	l.logger.Info("fetched default example",
		logging.String("name", l.cfg.DefaultName),
		logging.Int("bytes", len(data)),
	)
	return nil
}

func (l *Library) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(l.cfg.Dir); err != nil {
		watcher.Close()
		return err
	}
	l.watcher = watcher

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
					continue
				}
				if err := l.Refresh(); err != nil {
					l.logger.Warn("failed to refresh example listing", logging.Err(err))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.logger.Warn("example directory watcher error", logging.Err(err))
			case <-l.done:
				return
			}
		}
	}()
	return nil
}
