// Package app provides the core service that wires the asset pipeline and
// implements the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/scorecard/internal/adapters/assetcache"
	"github.com/okian/scorecard/internal/adapters/ddragon"
	"github.com/okian/scorecard/internal/domain/layout"
	"github.com/okian/scorecard/internal/domain/match"
	"github.com/okian/scorecard/internal/render"
	"github.com/okian/scorecard/pkg/logger"
)

// Service owns the asset cache, the provider client, and the renderer.
type Service struct {
	mu sync.Mutex

	// Core components
	cache    assetcache.Cache
	renderer *render.Renderer

	// Configuration
	assetBaseURL  string
	assetVersion  string
	cacheDir      string
	concurrency   int
	renderTimeout time.Duration
	admissionWait time.Duration
	geometry      layout.Geometry
	sweepInterval time.Duration
	cacheMaxAge   time.Duration

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	log logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		assetVersion:  "latest",
		cacheDir:      "cache",
		concurrency:   2,
		renderTimeout: 10 * time.Second,
		admissionWait: 3 * time.Second,
		geometry:      layout.DefaultGeometry(),
		sweepInterval: 6 * time.Hour,
		cacheMaxAge:   30 * 24 * time.Hour,
		stopCh:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components and launches the cache sweeper.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.log == nil {
		s.log = logger.Get()
	}

	s.log.Info(ctx, "starting scoreboard service...")

	provider := ddragon.NewClient(
		ddragon.WithBaseURL(s.assetBaseURL),
		ddragon.WithVersion(s.assetVersion),
	)

	cache, err := assetcache.New(provider,
		assetcache.WithRoot(s.cacheDir),
		assetcache.WithLogger(s.log.Named("assetcache")),
	)
	if err != nil {
		return fmt.Errorf("init asset cache: %w", err)
	}
	s.cache = cache

	s.renderer = render.New(cache,
		render.WithGeometry(s.geometry),
		render.WithConcurrency(s.concurrency),
		render.WithRenderTimeout(s.renderTimeout),
		render.WithAdmissionWait(s.admissionWait),
		render.WithLogger(s.log.Named("render")),
	)

	if s.sweepInterval > 0 {
		s.wg.Add(1)
		go s.sweepLoop()
	}

	s.started = true
	s.log.Info(ctx, "scoreboard service started",
		logger.String("assetVersion", s.assetVersion),
		logger.String("cacheDir", s.cacheDir),
		logger.Int("renderConcurrency", s.concurrency))
	return nil
}

// Stop shuts the service down and waits for the sweeper to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	close(s.stopCh)
	s.wg.Wait()
	s.started = false
}

// sweepLoop periodically deletes cached assets older than the configured age.
func (s *Service) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	ctx := context.Background()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if _, err := s.cache.CleanupOlderThan(ctx, s.cacheMaxAge); err != nil {
				s.log.Warn(ctx, "cache sweep failed", logger.Error(err))
			}
		}
	}
}

// RenderSummary renders one tracked account's scoreboard as PNG bytes.
func (s *Service) RenderSummary(ctx context.Context, puuid string, m *match.Match) ([]byte, error) {
	return s.renderer.RenderSummary(ctx, puuid, m)
}

// CacheStats reports the on-disk cache contents.
func (s *Service) CacheStats(ctx context.Context) (assetcache.Stats, error) {
	return s.cache.Stats(ctx)
}

// CleanupCache deletes cached assets older than maxAge and returns the count.
func (s *Service) CleanupCache(ctx context.Context, maxAge time.Duration) (int, error) {
	return s.cache.CleanupOlderThan(ctx, maxAge)
}
