package ddragon

import "errors"

// Sentinel kinds for asset provider errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
