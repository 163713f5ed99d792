// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Default configuration constants.
const (
	defaultAssetBaseURL = "https://ddragon.leagueoflegends.com/cdn"
	defaultAssetVersion = "14.10.1"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// AssetBaseURL is the Data Dragon CDN root.
	AssetBaseURL string `koanf:"asset_base_url"`

	// AssetVersion selects the Data Dragon asset set, e.g. "14.10.1".
	AssetVersion string `koanf:"asset_version"`

	// CacheDir is the root directory of the on-disk icon cache.
	CacheDir string `koanf:"cache_dir"`

	// CacheSweepInterval is how often the age-based cleanup sweep runs.
	// Zero disables the sweeper.
	CacheSweepInterval time.Duration `koanf:"cache_sweep_interval"`

	// CacheMaxAge is the age cutoff used by the cleanup sweep.
	CacheMaxAge time.Duration `koanf:"cache_max_age"`

	// RenderConcurrency bounds how many renders may compose bitmaps at once.
	RenderConcurrency int `koanf:"render_concurrency"`

	// RenderTimeout is the overall deadline for a single render.
	RenderTimeout time.Duration `koanf:"render_timeout"`

	// AdmissionWait bounds how long a render may wait for a free slot.
	AdmissionWait time.Duration `koanf:"admission_wait"`

	// ImageWidth is the fixed scoreboard width in pixels.
	ImageWidth int `koanf:"image_width"`

	// Row and header pixel geometry.
	HeaderHeight       int `koanf:"header_height"`
	TeamHeaderHeight   int `koanf:"team_header_height"`
	ColumnHeaderHeight int `koanf:"column_header_height"`
	RowHeight          int `koanf:"row_height"`
	TeamSpacing        int `koanf:"team_spacing"`
	BottomPadding      int `koanf:"bottom_padding"`

	// MainItemSlots is the number of main inventory cells per row (6 or 7).
	MainItemSlots int `koanf:"main_item_slots"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9090",
		AssetBaseURL:       defaultAssetBaseURL,
		AssetVersion:       defaultAssetVersion,
		CacheDir:           "cache",
		CacheSweepInterval: 6 * time.Hour,
		CacheMaxAge:        30 * 24 * time.Hour,
		RenderConcurrency:  2,
		RenderTimeout:      10 * time.Second,
		AdmissionWait:      3 * time.Second,
		ImageWidth:         1000,
		HeaderHeight:       60,
		TeamHeaderHeight:   36,
		ColumnHeaderHeight: 24,
		RowHeight:          48,
		TeamSpacing:        16,
		BottomPadding:      12,
		MainItemSlots:      6,
	}
}
