// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a read-only browse workflow for the song catalog:
//  1. [SongListView] : Scroll the catalog with sortable columns (n/d/a toggle name, date, artist)
//  2. [SongDetailView] : Inspect a single song's stored metadata
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Editing happens in the browser interface; the TUI only reads from the store.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
