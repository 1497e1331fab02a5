package domain

import "errors"

// Tracking errors.
var (
	// ErrInsufficientData signals that origin or destination coordinates are
	// absent or non-finite, so no route geometry can be derived. Callers
	// degrade to a placeholder state rather than failing.
	ErrInsufficientData = errors.New("insufficient data to derive route view")

	ErrSnapshotNotFound = errors.New("tracking snapshot not found")

	// ErrFetchFailed wraps a refresh/snapshot fetch failure. The last snapshot
	// remains displayed; the scheduler keeps ticking.
	ErrFetchFailed = errors.New("snapshot fetch failed")
)

// Device-location errors, distinguishable by reason.
var (
	ErrLocationPermissionDenied = errors.New("device location permission denied")
	ErrLocationUnavailable      = errors.New("device location unavailable")
	ErrLocationTimeout          = errors.New("device location request timed out")
)
