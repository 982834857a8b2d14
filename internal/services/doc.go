// Package services defines the [CatalogService] interface for external music
// catalogs and implements it for Spotify.
//
// # Catalog Contract
//
// A catalog resolves a free-text query to at most one [Track] descriptor.
// The descriptor is transient: it exists to be consumed by the import flow
// and is never stored as-is. Callers distinguish "no match" (an expected
// outcome) from "catalog unreachable" (a retryable failure) via the
// sentinel errors in the shared package.
//
// [SpotifyService] authenticates with the client-credentials grant, rate
// limits outbound requests, and is constructed once from configuration and
// shared across requests.
package services
