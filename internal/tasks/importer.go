// package tasks implements the import reconciliation flow for the song catalog.
//
// The core abstraction is Importer, which orchestrates the external catalog
// lookup and the local record store: resolve a query, dedup by the catalog's
// id, persist a normalized song. Every way a request can end is a named
// terminal state so callers translate outcomes instead of parsing errors.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/songshelf/internal/models"
	"github.com/desertthunder/songshelf/internal/services"
	"github.com/desertthunder/songshelf/internal/shared"
)

// ImportStatus names the terminal state of one import request.
type ImportStatus int

const (
	// ImportCreated means the track was resolved and a new song persisted.
	ImportCreated ImportStatus = iota
	// ImportAlreadyExists means the resolved track was already cataloged.
	// This is a successful no-op, not an error.
	ImportAlreadyExists
	// ImportNotFound means the catalog had no match for the query.
	ImportNotFound
	// ImportLookupFailed means the catalog was unreachable or erroring.
	ImportLookupFailed
	// ImportPersistFailed means the record store rejected the write.
	ImportPersistFailed
)

func (s ImportStatus) String() string {
	switch s {
	case ImportCreated:
		return "created"
	case ImportAlreadyExists:
		return "already exists"
	case ImportNotFound:
		return "not found"
	case ImportLookupFailed:
		return "lookup failed"
	case ImportPersistFailed:
		return "persist failed"
	default:
		return "unknown"
	}
}

// ImportResult is the outcome of one import request.
type ImportResult struct {
	Status ImportStatus
	Song   *models.Song // Set on Created and AlreadyExists
	Err    error        // Set on NotFound, LookupFailed, and PersistFailed
}

// Ok reports whether the request left the catalog in the requested state
// (the song is present), regardless of which request put it there.
func (r ImportResult) Ok() bool {
	return r.Status == ImportCreated || r.Status == ImportAlreadyExists
}

// SongStore is the slice of the record store the importer needs: creation and
// the dedup lookup by external id. The importer never mutates songs directly.
type SongStore interface {
	Create(song *models.Song) error
	GetBySpotifyID(spotifyID string) (*models.Song, error)
}

// Importer reconciles a user query against the external catalog and the
// local record store.
type Importer struct {
	catalog services.CatalogService
	songs   SongStore
}

// NewImporter creates an Importer over the given catalog and store.
func NewImporter(catalog services.CatalogService, songs SongStore) *Importer {
	return &Importer{catalog: catalog, songs: songs}
}

// Import resolves a query, dedups by the resolved external id, and persists
// a new song built from the descriptor (title, first artist, release date
// verbatim, fresh added-at).
//
// The dedup check runs after lookup (the external id is unknown before) and
// before persisting. Two imports of the same track racing between those
// steps are caught by the store's uniqueness constraint: the losing insert
// reports AlreadyExists, keeping the no-duplicate invariant without a retry.
func (imp *Importer) Import(ctx context.Context, query string) ImportResult {
	track, err := imp.catalog.SearchTrack(ctx, query)
	if err != nil {
		if errors.Is(err, shared.ErrTrackNotFound) {
			return ImportResult{Status: ImportNotFound, Err: err}
		}
		return ImportResult{Status: ImportLookupFailed, Err: err}
	}

	existing, err := imp.songs.GetBySpotifyID(track.ID)
	if err == nil {
		return ImportResult{Status: ImportAlreadyExists, Song: existing}
	}
	if !errors.Is(err, shared.ErrSongNotFound) {
		return ImportResult{Status: ImportPersistFailed, Err: fmt.Errorf("dedup lookup: %w", err)}
	}

	song := models.NewSong(0, track.ID, track.Title, track.PrimaryArtist(), track.ReleaseDate)

	if err := imp.songs.Create(song); err != nil {
		if errors.Is(err, shared.ErrDuplicateSong) {
			if winner, gerr := imp.songs.GetBySpotifyID(track.ID); gerr == nil {
				return ImportResult{Status: ImportAlreadyExists, Song: winner}
			}
			return ImportResult{Status: ImportAlreadyExists}
		}
		return ImportResult{Status: ImportPersistFailed, Err: err}
	}

	return ImportResult{Status: ImportCreated, Song: song}
}
