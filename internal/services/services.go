// package services defines interface CatalogService for external music catalogs
package services

import (
	"context"
)

// CatalogService is the lookup side of the import flow: it resolves a
// free-text query against an external music catalog.
type CatalogService interface {
	// SearchTrack resolves a query to at most one track descriptor, the
	// catalog's best match. It never returns a collection.
	//
	// No match is an expected outcome and surfaces as an error wrapping
	// [shared.ErrTrackNotFound]; transport or auth failures wrap
	// [shared.ErrCatalogUnavailable] so callers can tell the two apart.
	SearchTrack(ctx context.Context, query string) (*Track, error)

	// Name returns the name of the catalog (e.g., "Spotify")
	Name() string
}

// Track is the transient descriptor a catalog lookup produces. It lives for
// one import request: constructed per lookup, consumed by the importer,
// never persisted as-is.
type Track struct {
	ID          string   // Catalog's own unique id, the local dedup key
	Title       string   // Track title
	Artists     []string // Ordered artist names; the first is the primary artist
	Album       string   // Album title
	ReleaseDate string   // Album release date, verbatim as the catalog reports it
	ISRC        string   // International Standard Recording Code, when reported
}

// PrimaryArtist returns the first listed artist, or an empty string when the
// catalog reported none.
func (t *Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}
