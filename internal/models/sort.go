package models

import "strings"

// SortKey names one of the orderings the song listing supports. The zero
// value is the default ordering (name ascending). Exactly one ordering is
// active per listing request; keys do not compose.
type SortKey string

const (
	SortNameAsc    SortKey = ""
	SortNameDesc   SortKey = "name_desc"
	SortDateAsc    SortKey = "date"
	SortDateDesc   SortKey = "date_desc"
	SortArtistAsc  SortKey = "artist"
	SortArtistDesc SortKey = "artist_desc"
)

// ParseSortKey maps a requested sort key to a supported ordering. Matching is
// case-insensitive so legacy query strings like "Date" and "Artist" still
// resolve; anything unrecognized falls back to the default.
func ParseSortKey(raw string) SortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "name_desc":
		return SortNameDesc
	case "date":
		return SortDateAsc
	case "date_desc":
		return SortDateDesc
	case "artist":
		return SortArtistAsc
	case "artist_desc":
		return SortArtistDesc
	default:
		return SortNameAsc
	}
}

// String returns the query-string form of the key.
func (k SortKey) String() string {
	return string(k)
}

// SortToggles holds the sort key each column header should request next.
// Clicking a header flips that column between ascending and descending.
type SortToggles struct {
	Name   SortKey
	Date   SortKey
	Artist SortKey
}

// Toggles computes the next key per column for the given active ordering.
// A column currently sorted ascending offers its descending key; any other
// state offers the column's ascending key.
func Toggles(current SortKey) SortToggles {
	toggles := SortToggles{
		Name:   SortNameAsc,
		Date:   SortDateAsc,
		Artist: SortArtistAsc,
	}

	switch current {
	case SortNameAsc:
		toggles.Name = SortNameDesc
	case SortDateAsc:
		toggles.Date = SortDateDesc
	case SortArtistAsc:
		toggles.Artist = SortArtistDesc
	}

	return toggles
}
