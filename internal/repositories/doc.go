// Package repositories implements SQLite persistence for the song catalog.
//
// [SongRepository] handles CRUD operations with atomic sequence generation,
// a storage-level uniqueness guarantee on the external Spotify id, and
// version-checked updates for optimistic concurrency.
package repositories
