// Package models defines domain entities and persistence interfaces for the songshelf catalog manager.
//
// The package contains two categories of types:
//
// 1. Persistent entities: database-backed records with full lifecycle management
//   - [Song] : a track imported from the external catalog, keyed internally by
//     uuid and externally by its unique Spotify id
//
// 2. Listing contracts shared by every surface (web, CLI, TUI):
//   - [SortKey] : the orderings the song listing supports, with a
//     case-insensitive parser that falls back to name-ascending
//   - [SortToggles] : the next key each column header offers, flipping a
//     column between ascending and descending on repeated requests
//
// Persistent entities implement the Model interface providing ID access, timestamps, and validation.
// The Repository[T] interface defines standard CRUD operations plus ordered listing for database access.
package models
