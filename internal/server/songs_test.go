package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/songshelf/internal/models"
	"github.com/desertthunder/songshelf/internal/repositories"
	"github.com/desertthunder/songshelf/internal/services"
	"github.com/desertthunder/songshelf/internal/shared"
	"github.com/desertthunder/songshelf/internal/tasks"
	shelftest "github.com/desertthunder/songshelf/internal/testing"
)

// newTestRouter builds a router around an in-memory store with no
// anti-forgery middleware so submissions can be posted directly.
func newTestRouter(t *testing.T) (*BasicRouter, *shelftest.MockCatalog, *repositories.SongRepository) {
	t.Helper()

	db := shelftest.NewTestDB(t)
	repo := repositories.NewSongRepository(db)
	catalog := &shelftest.MockCatalog{}
	logger := shared.NewLogger(io.Discard)

	renderer, err := NewRenderer(logger)
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}

	handler := NewSongsHandler(repo, tasks.NewImporter(catalog, repo), renderer, logger)
	router := NewBasicRouter()
	router.Handler(handler)

	return router, catalog, repo
}

func seedSong(t *testing.T, repo *repositories.SongRepository, spotifyID, name, artist, date string) *models.Song {
	t.Helper()

	song := models.NewSong(0, spotifyID, name, artist, date)
	if err := repo.Create(song); err != nil {
		t.Fatalf("failed to seed song: %v", err)
	}

	return song
}

func get(router *BasicRouter, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(router *BasicRouter, path string, form url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(rec, req)
	return rec
}

func TestSongsIndex(t *testing.T) {
	router, _, repo := newTestRouter(t)

	seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")
	seedSong(t, repo, "sp-amsterdam", "Amsterdam", "Coldplay", "2002-08-26")

	t.Run("Default Sorts By Name", func(t *testing.T) {
		rec := get(router, "/songs")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		body := rec.Body.String()
		if strings.Index(body, "Amsterdam") > strings.Index(body, "Creep") {
			t.Error("expected Amsterdam before Creep in default order")
		}
	})

	t.Run("Descending Sort Reverses Order", func(t *testing.T) {
		rec := get(router, "/songs?sort=name_desc")

		body := rec.Body.String()
		if strings.Index(body, "Creep") > strings.Index(body, "Amsterdam") {
			t.Error("expected Creep before Amsterdam with name_desc")
		}
	})

	t.Run("Unknown Sort Falls Back", func(t *testing.T) {
		rec := get(router, "/songs?sort=bogus")

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 for unknown sort key, got %d", rec.Code)
		}
	})

	t.Run("Header Links Toggle Direction", func(t *testing.T) {
		rec := get(router, "/songs")

		if !strings.Contains(rec.Body.String(), "/songs?sort=name_desc") {
			t.Error("expected name column to offer descending toggle")
		}
	})

	t.Run("Rejects Non GET", func(t *testing.T) {
		rec := postForm(router, "/songs", url.Values{})

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestSongsDetail(t *testing.T) {
	router, _, repo := newTestRouter(t)
	song := seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")

	t.Run("Shows Song Fields", func(t *testing.T) {
		rec := get(router, "/songs/"+song.ID())

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		body := rec.Body.String()
		for _, want := range []string{"Creep", "Radiohead", "1992-09-21", "sp-creep"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %q", want)
			}
		}
	})

	t.Run("Unknown ID Is Not Found", func(t *testing.T) {
		rec := get(router, "/songs/missing")

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestSongsCreate(t *testing.T) {
	t.Run("Renders Form", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		rec := get(router, "/songs/create")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		if !strings.Contains(rec.Body.String(), "songName") {
			t.Error("expected form to contain songName input")
		}
	})

	t.Run("Imports Best Match And Redirects", func(t *testing.T) {
		router, catalog, repo := newTestRouter(t)
		catalog.Enqueue(&services.Track{
			ID:          "sp-creep",
			Title:       "Creep",
			Artists:     []string{"Radiohead", "Thom Yorke"},
			ReleaseDate: "1992-09-21",
		}, nil)

		rec := postForm(router, "/songs/create", url.Values{"songName": {"creep"}})

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}

		if loc := rec.Header().Get("Location"); loc != "/songs" {
			t.Errorf("expected redirect to /songs, got %q", loc)
		}

		song, err := repo.GetBySpotifyID("sp-creep")
		if err != nil {
			t.Fatalf("expected imported song: %v", err)
		}

		if song.Artist() != "Radiohead" {
			t.Errorf("expected first artist only, got %q", song.Artist())
		}
	})

	t.Run("Duplicate Import Redirects Without Error", func(t *testing.T) {
		router, catalog, repo := newTestRouter(t)
		seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")
		catalog.Enqueue(&services.Track{ID: "sp-creep", Title: "Creep"}, nil)

		rec := postForm(router, "/songs/create", url.Values{"songName": {"creep"}})

		if rec.Code != http.StatusSeeOther {
			t.Errorf("expected 303 for duplicate, got %d", rec.Code)
		}

		songs, err := repo.List(models.SortNameAsc)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}

		if len(songs) != 1 {
			t.Errorf("expected one record after duplicate import, got %d", len(songs))
		}
	})

	t.Run("Blank Name Re-Renders Form", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		rec := postForm(router, "/songs/create", url.Values{"songName": {"   "}})

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}

		if !strings.Contains(rec.Body.String(), "required") {
			t.Error("expected validation message in response")
		}
	})

	t.Run("No Match Is Not Found", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		rec := postForm(router, "/songs/create", url.Values{"songName": {"no such track"}})

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Catalog Failure Is Bad Gateway", func(t *testing.T) {
		router, catalog, _ := newTestRouter(t)
		catalog.Enqueue(nil, shared.ErrCatalogUnavailable)

		rec := postForm(router, "/songs/create", url.Values{"songName": {"creep"}})

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})
}

func TestSongsEdit(t *testing.T) {
	editForm := func(song *models.Song, overrides url.Values) url.Values {
		form := url.Values{
			"id":          {song.ID()},
			"version":     {"1"},
			"name":        {song.Name()},
			"artist":      {song.Artist()},
			"releaseDate": {song.ReleaseDate()},
		}
		for key, value := range overrides {
			form[key] = value
		}
		return form
	}

	t.Run("Renders Prefilled Form", func(t *testing.T) {
		router, _, repo := newTestRouter(t)
		song := seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")

		rec := get(router, "/songs/"+song.ID()+"/edit")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		if !strings.Contains(rec.Body.String(), "Radiohead") {
			t.Error("expected form prefilled with current artist")
		}
	})

	t.Run("Valid Input Persists", func(t *testing.T) {
		router, _, repo := newTestRouter(t)
		song := seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")

		rec := postForm(router, "/songs/"+song.ID()+"/edit",
			editForm(song, url.Values{"name": {"Creep (Remastered)"}}))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
		}

		updated, err := repo.Get(song.ID())
		if err != nil {
			t.Fatalf("failed to reload song: %v", err)
		}

		if updated.Name() != "Creep (Remastered)" {
			t.Errorf("expected updated name, got %q", updated.Name())
		}

		if updated.Version() != 2 {
			t.Errorf("expected version bump to 2, got %d", updated.Version())
		}

		if updated.SpotifyID() != "sp-creep" {
			t.Errorf("expected spotify id unchanged, got %q", updated.SpotifyID())
		}
	})

	t.Run("Mismatched ID Is Not Found", func(t *testing.T) {
		router, _, repo := newTestRouter(t)
		song := seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")

		rec := postForm(router, "/songs/"+song.ID()+"/edit",
			editForm(song, url.Values{"id": {"someone-else"}}))

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 for id mismatch, got %d", rec.Code)
		}
	})

	t.Run("Blank Name Re-Renders Form", func(t *testing.T) {
		router, _, repo := newTestRouter(t)
		song := seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")

		rec := postForm(router, "/songs/"+song.ID()+"/edit",
			editForm(song, url.Values{"name": {""}}))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}

		reloaded, _ := repo.Get(song.ID())
		if reloaded.Name() != "Creep" {
			t.Errorf("expected name unchanged after invalid submission, got %q", reloaded.Name())
		}
	})

	t.Run("Stale Version Conflicts", func(t *testing.T) {
		router, _, repo := newTestRouter(t)
		song := seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")

		// First edit bumps the stored version to 2.
		first := postForm(router, "/songs/"+song.ID()+"/edit",
			editForm(song, url.Values{"name": {"Creep (Live)"}}))
		if first.Code != http.StatusSeeOther {
			t.Fatalf("setup edit failed: %d", first.Code)
		}

		stale := postForm(router, "/songs/"+song.ID()+"/edit",
			editForm(song, url.Values{"name": {"Creep (Acoustic)"}, "version": {"1"}}))

		if stale.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", stale.Code)
		}

		if !strings.Contains(stale.Body.String(), "Someone else changed") {
			t.Error("expected conflict message in response")
		}

		current, _ := repo.Get(song.ID())
		if current.Name() != "Creep (Live)" {
			t.Errorf("expected stale write discarded, got %q", current.Name())
		}
	})

	t.Run("Unknown ID Is Not Found", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		rec := postForm(router, "/songs/missing/edit", url.Values{
			"id": {"missing"}, "version": {"1"}, "name": {"Anything"},
		})

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestSongsDelete(t *testing.T) {
	t.Run("Confirmation Page", func(t *testing.T) {
		router, _, repo := newTestRouter(t)
		song := seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")

		rec := get(router, "/songs/"+song.ID()+"/delete")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		if !strings.Contains(rec.Body.String(), "Creep") {
			t.Error("expected confirmation to name the song")
		}
	})

	t.Run("Removes Record And Redirects", func(t *testing.T) {
		router, _, repo := newTestRouter(t)
		song := seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")

		rec := postForm(router, "/songs/"+song.ID()+"/delete", url.Values{})

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}

		if _, err := repo.Get(song.ID()); err == nil {
			t.Error("expected song removed from store")
		}
	})

	t.Run("Repeat Delete Still Redirects", func(t *testing.T) {
		router, _, repo := newTestRouter(t)
		song := seedSong(t, repo, "sp-creep", "Creep", "Radiohead", "1992-09-21")

		postForm(router, "/songs/"+song.ID()+"/delete", url.Values{})
		rec := postForm(router, "/songs/"+song.ID()+"/delete", url.Values{})

		if rec.Code != http.StatusSeeOther {
			t.Errorf("expected 303 on repeat delete, got %d", rec.Code)
		}
	})

	t.Run("Unknown ID Confirmation Is Not Found", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		rec := get(router, "/songs/missing/delete")

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}
