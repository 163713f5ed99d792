// Package assetcache stores remote icon images on local disk.
//
// Lookups go index -> filesystem -> network; a hit at either of the first two
// steps never touches the network. Concurrent misses for the same key share a
// single download, and downloads land via temp-file-plus-rename so a partial
// write is never visible as a cached file.
package assetcache

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/scorecard/pkg/logger"
	"github.com/okian/scorecard/pkg/metrics"
)

// Cache subdirectories, one per asset kind.
const (
	championsDir = "champions"
	itemsDir     = "items"
)

// Fetcher retrieves icon bytes from the remote asset provider.
type Fetcher interface {
	ChampionIcon(ctx context.Context, name string) ([]byte, error)
	ItemIcon(ctx context.Context, id int) ([]byte, error)
}

// Stats summarizes the on-disk cache contents.
type Stats struct {
	Files      int   `json:"files"`
	TotalBytes int64 `json:"total_bytes"`
}

// Cache resolves asset keys to local file paths, downloading on miss.
type Cache interface {
	// ChampionIcon returns the local path of a champion's square icon.
	ChampionIcon(ctx context.Context, name string) (string, error)

	// ItemIcon returns the local path of an item icon. Id 0 means "no item"
	// and returns an empty path without any I/O.
	ItemIcon(ctx context.Context, id int) (string, error)

	// Stats reports the current file count and total size on disk.
	Stats(ctx context.Context) (Stats, error)

	// CleanupOlderThan deletes cached files older than maxAge and returns how
	// many were removed. Safe to run concurrently with lookups; a file deleted
	// mid-lookup surfaces as a cache miss, not a failure.
	CleanupOlderThan(ctx context.Context, maxAge time.Duration) (int, error)
}

// DiskCache implements Cache over a directory tree.
type DiskCache struct {
	root    string
	fetcher Fetcher

	mu    sync.RWMutex
	index map[string]struct{} // relative path -> cached

	flight singleflight.Group // one download per destination path

	log logger.Logger
}

// New creates a DiskCache, ensures its subdirectories exist, and warms the
// in-memory index from files already on disk so a restarted process serves
// a populated cache volume without re-downloading.
func New(fetcher Fetcher, opts ...Option) (*DiskCache, error) {
	d := &DiskCache{
		root:    "cache",
		fetcher: fetcher,
		index:   make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.log == nil {
		d.log = logger.Named("assetcache")
	}

	for _, sub := range []string{championsDir, itemsDir} {
		if err := os.MkdirAll(filepath.Join(d.root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCacheIO, err)
		}
	}

	d.warm()
	return d, nil
}

// warm scans the cache directories and records pre-existing files.
func (d *DiskCache) warm() {
	ctx := context.Background()
	found := 0
	for _, sub := range []string{championsDir, itemsDir} {
		entries, err := os.ReadDir(filepath.Join(d.root, sub))
		if err != nil {
			d.log.Warn(ctx, "cache scan failed", logger.String("dir", sub), logger.Error(err))
			continue
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".png" {
				continue
			}
			d.index[filepath.Join(sub, e.Name())] = struct{}{}
			found++
		}
	}
	if found > 0 {
		d.log.Info(ctx, "cache warmed from disk", logger.Int("files", found))
	}
}

// ChampionIcon implements Cache.
func (d *DiskCache) ChampionIcon(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	rel := filepath.Join(championsDir, name+".png")
	return d.lookup(ctx, rel, func(ctx context.Context) ([]byte, error) {
		return d.fetcher.ChampionIcon(ctx, name)
	})
}

// ItemIcon implements Cache.
func (d *DiskCache) ItemIcon(ctx context.Context, id int) (string, error) {
	if id == 0 {
		return "", nil
	}
	rel := filepath.Join(itemsDir, strconv.Itoa(id)+".png")
	return d.lookup(ctx, rel, func(ctx context.Context) ([]byte, error) {
		return d.fetcher.ItemIcon(ctx, id)
	})
}

// lookup resolves one relative cache path, downloading at most once across
// concurrent callers.
func (d *DiskCache) lookup(ctx context.Context, rel string, fetch func(context.Context) ([]byte, error)) (string, error) {
	abs := filepath.Join(d.root, rel)

	if d.cached(rel) {
		metrics.RecordCacheHit("index")
		return abs, nil
	}
	if _, err := os.Stat(abs); err == nil {
		// Present on disk but not indexed yet (another process, or a fresh
		// volume); adopt it.
		d.remember(rel)
		metrics.RecordCacheHit("disk")
		return abs, nil
	}
	metrics.RecordCacheMiss()

	ch := d.flight.DoChan(rel, func() (interface{}, error) {
		return nil, d.download(ctx, abs, fetch)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			metrics.RecordSharedDownload()
		}
		d.remember(rel)
		return abs, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// download fetches the asset and atomically installs it at abs. The key stays
// absent on failure so a later request retries.
func (d *DiskCache) download(ctx context.Context, abs string, fetch func(context.Context) ([]byte, error)) error {
	data, err := fetch(ctx)
	if err != nil {
		metrics.RecordDownloadError()
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}

	tmp, err := os.CreateTemp(d.root, "dl-*.tmp")
	if err != nil {
		metrics.RecordDownloadError()
		return fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		metrics.RecordDownloadError()
		return fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		metrics.RecordDownloadError()
		return fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	if err := os.Rename(tmp.Name(), abs); err != nil {
		os.Remove(tmp.Name())
		metrics.RecordDownloadError()
		return fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	metrics.RecordDownload()
	return nil
}

// Stats implements Cache. The filesystem, not the index, is the source of
// truth for sizes.
func (d *DiskCache) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() || filepath.Ext(path) != ".png" {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return nil // deleted mid-walk; skip
		}
		s.Files++
		s.TotalBytes += info.Size()
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	metrics.UpdateCacheStats(s.Files, s.TotalBytes)
	return s, nil
}

// CleanupOlderThan implements Cache. Files are aged by mtime; downloads never
// rewrite an installed file, so mtime is the time the asset was cached.
func (d *DiskCache) CleanupOlderThan(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	deleted := 0
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() || filepath.Ext(path) != ".png" {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return nil // already gone
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return nil
		}
		if err := os.Remove(path); err != nil {
			d.log.Warn(ctx, "cleanup remove failed", logger.String("path", path), logger.Error(err))
			return nil
		}
		d.forget(rel)
		deleted++
		return nil
	})
	if err != nil {
		return deleted, fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	if deleted > 0 {
		metrics.RecordCleanupDeleted(deleted)
		d.log.Info(ctx, "cache cleanup finished", logger.Int("deleted", deleted))
	}
	return deleted, nil
}

func (d *DiskCache) cached(rel string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.index[rel]
	return ok
}

// remember is insert-if-absent; two callers racing to record the same key
// converge on one entry.
func (d *DiskCache) remember(rel string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.index[rel] = struct{}{}
}

func (d *DiskCache) forget(rel string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.index, rel)
}
