package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Catalog lookup errors. ErrTrackNotFound is an expected outcome
	// (no match for the query), ErrCatalogUnavailable is a transport or
	// auth failure talking to the external catalog.
	ErrTrackNotFound      = fmt.Errorf("track not found")
	ErrCatalogUnavailable = fmt.Errorf("catalog unavailable")

	// Record store errors
	ErrSongNotFound  = fmt.Errorf("song not found")
	ErrDuplicateSong = fmt.Errorf("song already cataloged")
	ErrConflict      = fmt.Errorf("song modified concurrently")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
