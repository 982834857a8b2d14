package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/songshelf/internal/models"
	"github.com/desertthunder/songshelf/internal/repositories"
	"github.com/desertthunder/songshelf/internal/services"
	"github.com/desertthunder/songshelf/internal/shared"
	shelftest "github.com/desertthunder/songshelf/internal/testing"
)

func bohemianRhapsody() *services.Track {
	return &services.Track{
		ID:          "X1",
		Title:       "Bohemian Rhapsody",
		Artists:     []string{"Queen"},
		Album:       "A Night at the Opera",
		ReleaseDate: "1975-10-31",
	}
}

func newImporter(t *testing.T) (*Importer, *shelftest.MockCatalog, *repositories.SongRepository) {
	t.Helper()

	db := shelftest.NewTestDB(t)
	repo := repositories.NewSongRepository(db)
	catalog := &shelftest.MockCatalog{}

	return NewImporter(catalog, repo), catalog, repo
}

func TestImporter(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		imp, catalog, repo := newImporter(t)
		catalog.Enqueue(bohemianRhapsody(), nil)

		result := imp.Import(context.Background(), "Bohemian Rhapsody")

		if result.Status != ImportCreated {
			t.Fatalf("expected ImportCreated, got %v (%v)", result.Status, result.Err)
		}

		if !result.Ok() {
			t.Error("created outcome should report ok")
		}

		song := result.Song
		if song == nil || song.ID() == "" {
			t.Fatal("expected persisted song with assigned id")
		}

		if song.Name() != "Bohemian Rhapsody" || song.Artist() != "Queen" {
			t.Errorf("song should carry title and first artist, got %s / %s", song.Name(), song.Artist())
		}

		if song.ReleaseDate() != "1975-10-31" {
			t.Errorf("release date should be preserved verbatim, got %s", song.ReleaseDate())
		}

		if song.AddedAt().IsZero() {
			t.Error("added-at should be freshly set")
		}

		stored, err := repo.GetBySpotifyID("X1")
		if err != nil {
			t.Fatalf("song should be in the store: %v", err)
		}
		if stored.ID() != song.ID() {
			t.Error("returned song should match stored record")
		}
	})

	t.Run("First Artist Only", func(t *testing.T) {
		imp, catalog, _ := newImporter(t)
		track := bohemianRhapsody()
		track.Artists = []string{"Queen", "David Bowie"}
		catalog.Enqueue(track, nil)

		result := imp.Import(context.Background(), "Under Pressure")

		if result.Status != ImportCreated {
			t.Fatalf("expected ImportCreated, got %v (%v)", result.Status, result.Err)
		}

		if result.Song.Artist() != "Queen" {
			t.Errorf("only the first listed artist is retained, got %s", result.Song.Artist())
		}
	})

	t.Run("Idempotent Import", func(t *testing.T) {
		imp, catalog, repo := newImporter(t)
		catalog.Enqueue(bohemianRhapsody(), nil)
		catalog.Enqueue(bohemianRhapsody(), nil)

		first := imp.Import(context.Background(), "Bohemian Rhapsody")
		if first.Status != ImportCreated {
			t.Fatalf("expected ImportCreated, got %v (%v)", first.Status, first.Err)
		}

		second := imp.Import(context.Background(), "Bohemian Rhapsody")
		if second.Status != ImportAlreadyExists {
			t.Fatalf("expected ImportAlreadyExists, got %v (%v)", second.Status, second.Err)
		}

		if !second.Ok() {
			t.Error("already-exists is a successful no-op, not an error")
		}

		if second.Song == nil || second.Song.ID() != first.Song.ID() {
			t.Error("second import should surface the existing record")
		}

		songs, err := repo.List(models.SortNameAsc)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 1 {
			t.Errorf("store must hold exactly one record after repeat import, got %d", len(songs))
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		imp, catalog, repo := newImporter(t)
		catalog.Enqueue(nil, fmt.Errorf("no match: %w", shared.ErrTrackNotFound))

		result := imp.Import(context.Background(), "gibberish query")

		if result.Status != ImportNotFound {
			t.Fatalf("expected ImportNotFound, got %v", result.Status)
		}

		if result.Ok() {
			t.Error("not-found is not a success")
		}

		songs, err := repo.List(models.SortNameAsc)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 0 {
			t.Error("no record should be created on not-found")
		}
	})

	t.Run("LookupFailed", func(t *testing.T) {
		imp, catalog, repo := newImporter(t)
		catalog.Enqueue(nil, fmt.Errorf("status 502: %w", shared.ErrCatalogUnavailable))

		result := imp.Import(context.Background(), "Bohemian Rhapsody")

		if result.Status != ImportLookupFailed {
			t.Fatalf("expected ImportLookupFailed, got %v", result.Status)
		}

		if !errors.Is(result.Err, shared.ErrCatalogUnavailable) {
			t.Errorf("outcome should carry the lookup error, got %v", result.Err)
		}

		songs, err := repo.List(models.SortNameAsc)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 0 {
			t.Error("no partial record on lookup failure")
		}
	})

	t.Run("Race Loser Maps To AlreadyExists", func(t *testing.T) {
		// Simulate the insert losing a race: the pre-check misses, then the
		// store's unique constraint rejects the write.
		db := shelftest.NewTestDB(t)
		repo := repositories.NewSongRepository(db)
		catalog := &shelftest.MockCatalog{}
		catalog.Enqueue(bohemianRhapsody(), nil)

		imp := NewImporter(catalog, &racingStore{SongRepository: repo})

		result := imp.Import(context.Background(), "Bohemian Rhapsody")

		if result.Status != ImportAlreadyExists {
			t.Fatalf("expected ImportAlreadyExists for the race loser, got %v (%v)", result.Status, result.Err)
		}

		if result.Song == nil || result.Song.SpotifyID() != "X1" {
			t.Error("race loser should surface the winning record")
		}
	})

	t.Run("PersistFailed", func(t *testing.T) {
		imp, catalog, _ := newImporter(t)
		track := bohemianRhapsody()
		track.Title = "" // store validation rejects nameless songs
		catalog.Enqueue(track, nil)

		result := imp.Import(context.Background(), "Bohemian Rhapsody")

		if result.Status != ImportPersistFailed {
			t.Fatalf("expected ImportPersistFailed, got %v", result.Status)
		}

		if result.Err == nil {
			t.Error("persist failure should carry the store error")
		}
	})
}

// racingStore makes the dedup pre-check miss once, so the subsequent insert
// collides with a concurrently created record.
type racingStore struct {
	*repositories.SongRepository
	checked bool
}

func (r *racingStore) GetBySpotifyID(spotifyID string) (*models.Song, error) {
	if !r.checked {
		r.checked = true
		winner := models.NewSong(0, spotifyID, "Bohemian Rhapsody", "Queen", "1975-10-31")
		if err := r.SongRepository.Create(winner); err != nil {
			return nil, err
		}
		return nil, shared.ErrSongNotFound
	}
	return r.SongRepository.GetBySpotifyID(spotifyID)
}

func TestImportStatusString(t *testing.T) {
	tc := []struct {
		status ImportStatus
		want   string
	}{
		{ImportCreated, "created"},
		{ImportAlreadyExists, "already exists"},
		{ImportNotFound, "not found"},
		{ImportLookupFailed, "lookup failed"},
		{ImportPersistFailed, "persist failed"},
		{ImportStatus(99), "unknown"},
	}

	for _, tt := range tc {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("ImportStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
