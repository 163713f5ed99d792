// Package render composes post-match scoreboard images.
package render

import (
	"time"

	"github.com/okian/scorecard/internal/domain/layout"
	"github.com/okian/scorecard/pkg/logger"
)

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithGeometry sets the scoreboard pixel geometry.
func WithGeometry(g layout.Geometry) Option {
	return func(r *Renderer) {
		if g.Width > 0 {
			r.geom = g
		}
	}
}

// WithConcurrency bounds how many renders may compose bitmaps at once.
func WithConcurrency(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.concurrency = int64(n)
		}
	}
}

// WithRenderTimeout sets the overall deadline for one render.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.renderTimeout = d
		}
	}
}

// WithAdmissionWait bounds how long a render may wait for a free slot.
func WithAdmissionWait(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.admissionWait = d
		}
	}
}

// WithLogger sets a custom logger for the renderer.
func WithLogger(log logger.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}
