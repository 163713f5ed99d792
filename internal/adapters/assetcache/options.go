// Package assetcache stores remote icon images on local disk.
package assetcache

import "github.com/okian/scorecard/pkg/logger"

// Option applies a configuration option to the DiskCache.
type Option func(*DiskCache)

// WithRoot sets the cache root directory.
func WithRoot(root string) Option {
	return func(d *DiskCache) {
		if root != "" {
			d.root = root
		}
	}
}

// WithLogger sets a custom logger for the cache.
func WithLogger(log logger.Logger) Option {
	return func(d *DiskCache) {
		if log != nil {
			d.log = log
		}
	}
}
