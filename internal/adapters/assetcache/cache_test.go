package assetcache_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/scorecard/internal/adapters/assetcache"
	"github.com/okian/scorecard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// stubFetcher serves a fixed PNG payload and counts fetches.
type stubFetcher struct {
	champions atomic.Int32
	items     atomic.Int32
	delay     time.Duration
	failing   atomic.Bool
	payload   []byte
}

func newStubFetcher() *stubFetcher {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)))
	return &stubFetcher{payload: buf.Bytes()}
}

func (f *stubFetcher) serve(ctx context.Context) ([]byte, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failing.Load() {
		return nil, errors.New("provider unavailable")
	}
	return f.payload, nil
}

func (f *stubFetcher) ChampionIcon(ctx context.Context, name string) ([]byte, error) {
	f.champions.Add(1)
	return f.serve(ctx)
}

func (f *stubFetcher) ItemIcon(ctx context.Context, id int) ([]byte, error) {
	f.items.Add(1)
	return f.serve(ctx)
}

func TestDiskCacheLookup(t *testing.T) {
	Convey("Given a disk cache over an empty directory", t, func() {
		fetcher := newStubFetcher()
		cache, err := assetcache.New(fetcher, assetcache.WithRoot(t.TempDir()))
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When requesting item id zero", func() {
			path, err := cache.ItemIcon(ctx, 0)

			Convey("Then it returns an empty path without any fetch", func() {
				So(err, ShouldBeNil)
				So(path, ShouldBeEmpty)
				So(fetcher.items.Load(), ShouldEqual, 0)
			})
		})

		Convey("When requesting an uncached champion icon", func() {
			path, err := cache.ChampionIcon(ctx, "Ahri")
			So(err, ShouldBeNil)

			Convey("Then the file is downloaded and installed", func() {
				So(path, ShouldEndWith, filepath.Join("champions", "Ahri.png"))
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(data, ShouldResemble, fetcher.payload)
				So(fetcher.champions.Load(), ShouldEqual, 1)
			})

			Convey("And a second request is served from the index", func() {
				again, err := cache.ChampionIcon(ctx, "Ahri")
				So(err, ShouldBeNil)
				So(again, ShouldEqual, path)
				So(fetcher.champions.Load(), ShouldEqual, 1)
			})
		})

		Convey("When the provider is failing", func() {
			fetcher.failing.Store(true)
			_, err := cache.ItemIcon(ctx, 3340)

			Convey("Then the lookup fails and the key stays absent", func() {
				So(errors.Is(err, assetcache.ErrDownload), ShouldBeTrue)

				Convey("And a later request retries and succeeds", func() {
					fetcher.failing.Store(false)
					path, err := cache.ItemIcon(ctx, 3340)
					So(err, ShouldBeNil)
					So(path, ShouldNotBeEmpty)
					So(fetcher.items.Load(), ShouldEqual, 2)
				})
			})
		})
	})
}

func TestDiskCacheDedup(t *testing.T) {
	Convey("Given a slow provider and many concurrent callers", t, func() {
		fetcher := newStubFetcher()
		fetcher.delay = 100 * time.Millisecond
		cache, err := assetcache.New(fetcher, assetcache.WithRoot(t.TempDir()))
		So(err, ShouldBeNil)

		const callers = 8
		paths := make([]string, callers)
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				paths[i], errs[i] = cache.ItemIcon(context.Background(), 6672)
			}()
		}
		wg.Wait()

		Convey("Then exactly one fetch happened and all callers share its result", func() {
			So(fetcher.items.Load(), ShouldEqual, 1)
			for i := 0; i < callers; i++ {
				So(errs[i], ShouldBeNil)
				So(paths[i], ShouldEqual, paths[0])
			}
			_, statErr := os.Stat(paths[0])
			So(statErr, ShouldBeNil)
		})
	})
}

func TestDiskCacheColdStart(t *testing.T) {
	Convey("Given a cache directory populated by a previous run", t, func() {
		root := t.TempDir()
		So(os.MkdirAll(filepath.Join(root, "champions"), 0o755), ShouldBeNil)
		seed := []byte("not-really-a-png-but-cached")
		So(os.WriteFile(filepath.Join(root, "champions", "Jinx.png"), seed, 0o644), ShouldBeNil)

		fetcher := newStubFetcher()
		cache, err := assetcache.New(fetcher, assetcache.WithRoot(root))
		So(err, ShouldBeNil)

		Convey("When requesting the pre-existing icon", func() {
			path, err := cache.ChampionIcon(context.Background(), "Jinx")

			Convey("Then it is served without any network fetch", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, filepath.Join(root, "champions", "Jinx.png"))
				So(fetcher.champions.Load(), ShouldEqual, 0)
			})
		})
	})
}

func TestDiskCacheMaintenance(t *testing.T) {
	Convey("Given a cache holding fresh and stale files", t, func() {
		fetcher := newStubFetcher()
		root := t.TempDir()
		cache, err := assetcache.New(fetcher, assetcache.WithRoot(root))
		So(err, ShouldBeNil)
		ctx := context.Background()

		stale, err := cache.ItemIcon(ctx, 1001)
		So(err, ShouldBeNil)
		fresh, err := cache.ItemIcon(ctx, 1002)
		So(err, ShouldBeNil)

		old := time.Now().Add(-48 * time.Hour)
		So(os.Chtimes(stale, old, old), ShouldBeNil)

		Convey("When reporting stats", func() {
			stats, err := cache.Stats(ctx)
			So(err, ShouldBeNil)
			So(stats.Files, ShouldEqual, 2)
			So(stats.TotalBytes, ShouldEqual, int64(2*len(fetcher.payload)))
		})

		Convey("When cleaning up entries older than a day", func() {
			deleted, err := cache.CleanupOlderThan(ctx, 24*time.Hour)
			So(err, ShouldBeNil)
			So(deleted, ShouldEqual, 1)

			Convey("Then the stale file is gone and the fresh one remains", func() {
				_, statErr := os.Stat(stale)
				So(os.IsNotExist(statErr), ShouldBeTrue)
				_, statErr = os.Stat(fresh)
				So(statErr, ShouldBeNil)
			})

			Convey("And the evicted key is re-downloaded on demand", func() {
				before := fetcher.items.Load()
				path, err := cache.ItemIcon(ctx, 1001)
				So(err, ShouldBeNil)
				So(path, ShouldEqual, stale)
				So(fetcher.items.Load(), ShouldEqual, before+1)
			})
		})
	})
}
