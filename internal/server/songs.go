package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songshelf/internal/models"
	"github.com/desertthunder/songshelf/internal/repositories"
	"github.com/desertthunder/songshelf/internal/shared"
	"github.com/desertthunder/songshelf/internal/tasks"
	"github.com/gorilla/csrf"
)

// SongsHandler serves the catalog's browser interface: listing, detail,
// catalog-backed creation, editing, and deletion of songs.
type SongsHandler struct {
	songs    *repositories.SongRepository
	importer *tasks.Importer
	renderer *Renderer
	logger   *log.Logger
}

// NewSongsHandler creates a [SongsHandler] backed by the given store and importer.
func NewSongsHandler(songs *repositories.SongRepository, importer *tasks.Importer, renderer *Renderer, logger *log.Logger) *SongsHandler {
	return &SongsHandler{
		songs:    songs,
		importer: importer,
		renderer: renderer,
		logger:   logger,
	}
}

// Routes implements [Handler]. The literal /songs/create pattern takes
// precedence over the /songs/{id} wildcard in [http.ServeMux].
func (h *SongsHandler) Routes() []string {
	return []string{
		"/songs",
		"/songs/create",
		"/songs/{id}",
		"/songs/{id}/edit",
		"/songs/{id}/delete",
	}
}

// ServeHTTP dispatches to the view or submission handler for the matched
// route. Form pages and their submissions share a path and split on method.
func (h *SongsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch {
	case id == "" && strings.HasSuffix(r.URL.Path, "/create"):
		h.dispatch(w, r, h.createForm, h.createSubmit)
	case id == "":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.index(w, r)
	case strings.HasSuffix(r.URL.Path, "/edit"):
		h.dispatch(w, r, h.editForm, h.editSubmit)
	case strings.HasSuffix(r.URL.Path, "/delete"):
		h.dispatch(w, r, h.deleteForm, h.deleteSubmit)
	default:
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.detail(w, r)
	}
}

func (h *SongsHandler) dispatch(w http.ResponseWriter, r *http.Request, get, post http.HandlerFunc) {
	switch r.Method {
	case http.MethodGet:
		get(w, r)
	case http.MethodPost:
		post(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// index renders the song listing ordered by the sort query parameter.
// Unknown sort values fall back to name ascending rather than erroring.
func (h *SongsHandler) index(w http.ResponseWriter, r *http.Request) {
	key := models.ParseSortKey(r.URL.Query().Get("sort"))

	songs, err := h.songs.List(key)
	if err != nil {
		h.logger.Error("failed to list songs", "error", err)
		h.renderError(w, http.StatusInternalServerError, "Something Went Wrong", "The song catalog could not be loaded.")
		return
	}

	h.renderer.Render(w, http.StatusOK, "index.html", indexData{
		Songs:   songs,
		Sort:    key,
		Toggles: models.Toggles(key),
	})
}

func (h *SongsHandler) detail(w http.ResponseWriter, r *http.Request) {
	song, ok := h.fetch(w, r)
	if !ok {
		return
	}

	h.renderer.Render(w, http.StatusOK, "detail.html", songData{Song: song})
}

func (h *SongsHandler) createForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "create.html", formData{
		Values: map[string]string{"songName": ""},
		CSRF:   csrf.TemplateField(r),
	})
}

// createSubmit searches the catalog for the submitted name and records the
// best match. An already-cataloged track redirects back to the listing with
// no error so repeat submissions stay harmless.
func (h *SongsHandler) createSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("songName"))
	if name == "" {
		h.renderer.Render(w, http.StatusUnprocessableEntity, "create.html", formData{
			Values: map[string]string{"songName": name},
			Errors: []string{"Track name is required."},
			CSRF:   csrf.TemplateField(r),
		})
		return
	}

	result := h.importer.Import(r.Context(), name)

	switch result.Status {
	case tasks.ImportCreated, tasks.ImportAlreadyExists:
		http.Redirect(w, r, "/songs", http.StatusSeeOther)
	case tasks.ImportNotFound:
		h.logger.Info("no catalog match", "query", name)
		h.renderError(w, http.StatusNotFound, "No Match Found", "Spotify has no track matching \""+name+"\".")
	case tasks.ImportLookupFailed:
		h.logger.Error("catalog lookup failed", "query", name, "error", result.Err)
		h.renderError(w, http.StatusBadGateway, "Catalog Unavailable", "Spotify could not be reached. Try again in a moment.")
	default:
		h.logger.Error("failed to save song", "query", name, "error", result.Err)
		h.renderError(w, http.StatusInternalServerError, "Something Went Wrong", "The track was found but could not be saved.")
	}
}

func (h *SongsHandler) editForm(w http.ResponseWriter, r *http.Request) {
	song, ok := h.fetch(w, r)
	if !ok {
		return
	}

	h.renderer.Render(w, http.StatusOK, "edit.html", formData{
		Song:   song,
		Values: editValues(song),
		CSRF:   csrf.TemplateField(r),
	})
}

// editSubmit persists valid changes to name, artist, and release date. The
// hidden id must match the path and a stale version re-renders the form with
// the current record so the user can retry against fresh data.
func (h *SongsHandler) editSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if r.FormValue("id") != id {
		h.renderNotFound(w)
		return
	}

	song, ok := h.fetch(w, r)
	if !ok {
		return
	}

	values := map[string]string{
		"version":     r.FormValue("version"),
		"name":        strings.TrimSpace(r.FormValue("name")),
		"artist":      strings.TrimSpace(r.FormValue("artist")),
		"releaseDate": strings.TrimSpace(r.FormValue("releaseDate")),
	}

	var formErrors []string
	if values["name"] == "" {
		formErrors = append(formErrors, "Name is required.")
	}

	version, err := strconv.Atoi(values["version"])
	if err != nil || version < 1 {
		formErrors = append(formErrors, "The form is out of date. Reload and try again.")
	}

	if len(formErrors) > 0 {
		h.renderer.Render(w, http.StatusUnprocessableEntity, "edit.html", formData{
			Song:   song,
			Values: values,
			Errors: formErrors,
			CSRF:   csrf.TemplateField(r),
		})
		return
	}

	song.SetName(values["name"])
	song.SetArtist(values["artist"])
	song.SetReleaseDate(values["releaseDate"])
	song.SetVersion(version)

	err = h.songs.Update(song)
	switch {
	case err == nil:
		http.Redirect(w, r, "/songs", http.StatusSeeOther)
	case errors.Is(err, shared.ErrSongNotFound):
		h.renderNotFound(w)
	case errors.Is(err, shared.ErrConflict):
		current, fetchErr := h.songs.Get(id)
		if fetchErr != nil {
			h.renderNotFound(w)
			return
		}

		h.renderer.Render(w, http.StatusConflict, "edit.html", formData{
			Song:   current,
			Values: editValues(current),
			Errors: []string{"Someone else changed this song. Review the current values and save again."},
			CSRF:   csrf.TemplateField(r),
		})
	default:
		h.logger.Error("failed to update song", "id", id, "error", err)
		h.renderError(w, http.StatusInternalServerError, "Something Went Wrong", "Your changes could not be saved.")
	}
}

func (h *SongsHandler) deleteForm(w http.ResponseWriter, r *http.Request) {
	song, ok := h.fetch(w, r)
	if !ok {
		return
	}

	h.renderer.Render(w, http.StatusOK, "delete.html", songData{
		Song: song,
		CSRF: csrf.TemplateField(r),
	})
}

// deleteSubmit removes the song. A record deleted between the confirmation
// page and the submission still redirects to the listing.
func (h *SongsHandler) deleteSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.songs.Delete(id); err != nil {
		h.logger.Error("failed to delete song", "id", id, "error", err)
		h.renderError(w, http.StatusInternalServerError, "Something Went Wrong", "The song could not be deleted.")
		return
	}

	http.Redirect(w, r, "/songs", http.StatusSeeOther)
}

// fetch loads the song in the request path, rendering the not-found page
// when the id is unknown. Every route with an {id} segment answers the same
// way for a missing record.
func (h *SongsHandler) fetch(w http.ResponseWriter, r *http.Request) (*models.Song, bool) {
	id := r.PathValue("id")

	song, err := h.songs.Get(id)
	if err != nil {
		if errors.Is(err, shared.ErrSongNotFound) {
			h.renderNotFound(w)
		} else {
			h.logger.Error("failed to load song", "id", id, "error", err)
			h.renderError(w, http.StatusInternalServerError, "Something Went Wrong", "The song could not be loaded.")
		}
		return nil, false
	}

	return song, true
}

func (h *SongsHandler) renderNotFound(w http.ResponseWriter) {
	h.renderError(w, http.StatusNotFound, "Song Not Found", "That song is not in your catalog.")
}

func (h *SongsHandler) renderError(w http.ResponseWriter, status int, title, message string) {
	h.renderer.Render(w, status, "error.html", errorData{Title: title, Message: message})
}

func editValues(song *models.Song) map[string]string {
	return map[string]string{
		"version":     strconv.Itoa(song.Version()),
		"name":        song.Name(),
		"artist":      song.Artist(),
		"releaseDate": song.ReleaseDate(),
	}
}
