package weather

import "errors"

// Failure taxonomy for weather queries. Handlers branch on these with
// errors.Is; the wrapped message keeps the attempted location and the
// provider's answer for the server-side log.
var (
	// ErrMissingLocation: no argument given and no stored default.
	ErrMissingLocation = errors.New("no location provided and no default location set")

	// ErrLocationNotFound: geocoding returned zero results or a
	// non-success status for the location text.
	ErrLocationNotFound = errors.New("location not found")

	// ErrProviderUnavailable: a metric fetch returned a non-success
	// status or an unreadable payload.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)
