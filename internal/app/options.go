// Package app provides the core service that wires the asset pipeline.
package app

import (
	"time"

	"github.com/okian/scorecard/internal/domain/layout"
	"github.com/okian/scorecard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAssetBaseURL sets the asset provider CDN root.
func WithAssetBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.assetBaseURL = baseURL
		}
	}
}

// WithAssetVersion selects the asset set version.
func WithAssetVersion(version string) Option {
	return func(s *Service) {
		if version != "" {
			s.assetVersion = version
		}
	}
}

// WithCacheDir sets the on-disk cache root.
func WithCacheDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.cacheDir = dir
		}
	}
}

// WithRenderConcurrency bounds concurrent bitmap composition.
func WithRenderConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithRenderTimeout sets the overall per-render deadline.
func WithRenderTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.renderTimeout = d
		}
	}
}

// WithAdmissionWait bounds how long a render waits for a free slot.
func WithAdmissionWait(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.admissionWait = d
		}
	}
}

// WithGeometry sets the scoreboard pixel geometry.
func WithGeometry(g layout.Geometry) Option {
	return func(s *Service) {
		if g.Width > 0 {
			s.geometry = g
		}
	}
}

// WithSweepInterval sets how often the cache sweeper runs. Zero disables it.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Service) {
		s.sweepInterval = d
	}
}

// WithCacheMaxAge sets the age cutoff used by the cache sweeper.
func WithCacheMaxAge(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cacheMaxAge = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}
