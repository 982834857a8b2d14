package models

import (
	"fmt"
	"time"
)

// Song is a track imported from the external catalog into the local collection.
//
// The internal id is assigned by the repository on creation and never changes.
// The Spotify id is the natural key: no two songs may share one. The release
// date is kept verbatim as the catalog reports it (Spotify mixes YYYY,
// YYYY-MM and YYYY-MM-DD precisions, so it is not a parseable date column).
type Song struct {
	id          string
	sequence    int
	spotifyID   string
	name        string
	artist      string
	releaseDate string
	version     int
	addedAt     time.Time
	updatedAt   time.Time
}

// NewSong creates a Song from resolved catalog metadata. The id is left empty
// until the repository persists it; version starts at 1.
func NewSong(sequence int, spotifyID, name, artist, releaseDate string) *Song {
	now := time.Now()
	return &Song{
		sequence:    sequence,
		spotifyID:   spotifyID,
		name:        name,
		artist:      artist,
		releaseDate: releaseDate,
		version:     1,
		addedAt:     now,
		updatedAt:   now,
	}
}

func (s *Song) ID() string { return s.id }
func (s *Song) Sequence() int { return s.sequence }
func (s *Song) SpotifyID() string { return s.spotifyID }
func (s *Song) Name() string { return s.name }
func (s *Song) Artist() string { return s.artist }
func (s *Song) ReleaseDate() string { return s.releaseDate }
func (s *Song) Version() int { return s.version }
func (s *Song) AddedAt() time.Time { return s.addedAt }
func (s *Song) UpdatedAt() time.Time { return s.updatedAt }

func (s *Song) SetID(id string) { s.id = id }
func (s *Song) SetSequence(sequence int) { s.sequence = sequence }
func (s *Song) SetVersion(version int) { s.version = version }
func (s *Song) SetAddedAt(t time.Time) { s.addedAt = t }
func (s *Song) SetUpdatedAt(t time.Time) { s.updatedAt = t }
func (s *Song) SetName(name string) { s.name = name }
func (s *Song) SetArtist(artist string) { s.artist = artist }
func (s *Song) SetReleaseDate(date string) { s.releaseDate = date }

// Validate checks that the fields the uniqueness and listing contracts depend
// on are present.
func (s *Song) Validate() error {
	if s.spotifyID == "" {
		return fmt.Errorf("song requires a spotify id")
	}
	if s.name == "" {
		return fmt.Errorf("song requires a name")
	}
	return nil
}
