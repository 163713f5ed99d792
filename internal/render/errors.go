package render

import "errors"

// Sentinel kinds for render errors.
var (
	// ErrParticipantNotFound means the tracked account is absent from the
	// match data. Nothing was drawn or downloaded.
	ErrParticipantNotFound = errors.New("tracked participant not found in match")

	// ErrAdmissionTimeout means no composition slot freed up within the
	// configured wait. Nothing was drawn; the caller may retry later.
	ErrAdmissionTimeout = errors.New("render queue admission timed out")
)
