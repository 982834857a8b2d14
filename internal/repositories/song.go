package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/songshelf/internal/models"
	"github.com/desertthunder/songshelf/internal/shared"
)

// orderClauses maps each supported sort key to its ORDER BY clause. The
// sequence column breaks ties so every key yields a deterministic total order.
var orderClauses = map[models.SortKey]string{
	models.SortNameAsc:    "name COLLATE NOCASE ASC, sequence ASC",
	models.SortNameDesc:   "name COLLATE NOCASE DESC, sequence DESC",
	models.SortDateAsc:    "release_date ASC, sequence ASC",
	models.SortDateDesc:   "release_date DESC, sequence DESC",
	models.SortArtistAsc:  "artist COLLATE NOCASE ASC, sequence ASC",
	models.SortArtistDesc: "artist COLLATE NOCASE DESC, sequence DESC",
}

// SongRepository implements models.Repository[*models.Song] over SQLite.
//
// The songs table carries a UNIQUE index on spotify_id: the repository is the
// layer that actually enforces the no-duplicate-imports invariant, because
// the import flow's read-then-write dedup check is not atomic. Updates use
// optimistic concurrency keyed on the version column.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new [models.Song] into the database with generated ID and sequence.
//
// A song whose spotify id is already cataloged fails with [shared.ErrDuplicateSong].
func (r *SongRepository) Create(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	song.SetID(id)
	song.SetSequence(sequence)

	query := `
		INSERT INTO songs (id, sequence, spotify_id, name, artist, release_date, version, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		song.SpotifyID(),
		song.Name(),
		song.Artist(),
		song.ReleaseDate(),
		song.Version(),
		song.AddedAt(),
		song.UpdatedAt(),
	)
	if err != nil {
		song.SetID("")
		if isUniqueViolation(err) {
			return fmt.Errorf("spotify id %s: %w", song.SpotifyID(), shared.ErrDuplicateSong)
		}
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// Get retrieves a song by its internal ID.
func (r *SongRepository) Get(id string) (*models.Song, error) {
	query := `
		SELECT id, sequence, spotify_id, name, artist, release_date, version, added_at, updated_at
		FROM songs
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetBySpotifyID retrieves a song by its external catalog id, the dedup key
// for imports.
func (r *SongRepository) GetBySpotifyID(spotifyID string) (*models.Song, error) {
	query := `
		SELECT id, sequence, spotify_id, name, artist, release_date, version, added_at, updated_at
		FROM songs
		WHERE spotify_id = ?
	`

	return r.scanOne(r.db.QueryRow(query, spotifyID))
}

// List retrieves every song exactly once, ordered by the given sort key.
// Unrecognized keys fall back to the default name-ascending order.
func (r *SongRepository) List(order models.SortKey) ([]*models.Song, error) {
	clause, ok := orderClauses[order]
	if !ok {
		clause = orderClauses[models.SortNameAsc]
	}

	query := fmt.Sprintf(`
		SELECT id, sequence, spotify_id, name, artist, release_date, version, added_at, updated_at
		FROM songs
		ORDER BY %s
	`, clause)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		song, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// Update replaces a song's editable fields keyed by internal id.
//
// The write is guarded by the version the caller read: a song modified or
// removed since then fails with [shared.ErrConflict] or [shared.ErrSongNotFound]
// instead of silently overwriting. On success the song's version is bumped.
func (r *SongRepository) Update(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()

	query := `
		UPDATE songs
		SET name = ?, artist = ?, release_date = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?
	`

	result, err := r.db.Exec(query,
		song.Name(),
		song.Artist(),
		song.ReleaseDate(),
		now,
		song.ID(),
		song.Version(),
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		if _, err := r.Get(song.ID()); err != nil {
			return fmt.Errorf("song %s: %w", song.ID(), shared.ErrSongNotFound)
		}
		return fmt.Errorf("song %s: %w", song.ID(), shared.ErrConflict)
	}

	song.SetVersion(song.Version() + 1)
	song.SetUpdatedAt(now)

	return nil
}

// Delete removes a song by ID. Deleting an id that is not present is a no-op,
// not an error; caller paths that care report not-found before calling.
func (r *SongRepository) Delete(id string) error {
	if _, err := r.db.Exec("DELETE FROM songs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return nil
}

// scanOne scans a single [sql.Row] into a [models.Song]
func (r *SongRepository) scanOne(row *sql.Row) (*models.Song, error) {
	var (
		id          string
		sequence    int
		spotifyID   string
		name        string
		artist      string
		releaseDate string
		version     int
		addedAt     time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&id, &sequence, &spotifyID, &name, &artist, &releaseDate, &version, &addedAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	return hydrate(id, sequence, spotifyID, name, artist, releaseDate, version, addedAt, updatedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.Song]
func (r *SongRepository) scanRow(rows *sql.Rows) (*models.Song, error) {
	var (
		id          string
		sequence    int
		spotifyID   string
		name        string
		artist      string
		releaseDate string
		version     int
		addedAt     time.Time
		updatedAt   time.Time
	)

	err := rows.Scan(&id, &sequence, &spotifyID, &name, &artist, &releaseDate, &version, &addedAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	return hydrate(id, sequence, spotifyID, name, artist, releaseDate, version, addedAt, updatedAt), nil
}

func hydrate(id string, sequence int, spotifyID, name, artist, releaseDate string, version int, addedAt, updatedAt time.Time) *models.Song {
	song := models.NewSong(sequence, spotifyID, name, artist, releaseDate)
	song.SetID(id)
	song.SetVersion(version)
	song.SetAddedAt(addedAt)
	song.SetUpdatedAt(updatedAt)
	return song
}
