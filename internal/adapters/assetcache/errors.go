package assetcache

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrDownload = errors.New("asset download failed")
	ErrCacheIO  = errors.New("cache io failed")
)
