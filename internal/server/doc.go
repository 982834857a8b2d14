// Package server provides HTTP routing, middleware, and the browser interface
// for the song catalog.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Handlers
// registered via [Router.Handler] receive every method on their routes and
// dispatch internally, so a form page and its submission share one path.
//
// # Songs Handler
//
// [SongsHandler] serves the five-view catalog workflow:
//
//	GET  /songs              → sortable listing
//	GET  /songs/create       → search form
//	POST /songs/create       → catalog lookup and import
//	GET  /songs/{id}         → detail view
//	GET  /songs/{id}/edit    → edit form
//	POST /songs/{id}/edit    → persist changes (optimistic concurrency)
//	GET  /songs/{id}/delete  → confirmation page
//	POST /songs/{id}/delete  → remove record
//
// Every route with an {id} segment renders the same not-found page for an
// unknown record.
//
// # Templates
//
// Views are server-rendered with html/template from an embedded filesystem.
// Each page template is parsed against a shared base layout at startup.
//
// # Middleware Stack
//
// [Logging] records method, path, status, and duration per request.
// [Recover] turns handler panics into 500 responses. [AntiForgery] signs
// form tokens with gorilla/csrf; submissions without a valid token are
// rejected before reaching a handler.
package server
