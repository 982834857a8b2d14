// package server contains middleware & handlers for the catalog web interface
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songshelf/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, panic recovery, and anti-forgery protection.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the catalog manager.
// Implementations handle specific endpoint groups (songs, health, etc).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// NewAppRouter assembles the full browser-facing router: logging, panic
// recovery, anti-forgery protection, the songs handler, and a root redirect
// into the listing.
func NewAppRouter(cfg ServerDeps) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Logging(cfg.Logger), Recover(cfg.Logger), AntiForgery(cfg.Config))
	router.Handler(cfg.Songs)
	router.Redirect("/{$}", "/songs")

	return router
}

// ServerDeps collects the pieces [NewAppRouter] wires together.
type ServerDeps struct {
	Config shared.ServerConfig
	Songs  *SongsHandler
	Logger *log.Logger
}

// Listen serves the router until ctx is cancelled, then shuts down gracefully.
// Read/write timeouts bound slow clients; in-flight requests get five seconds
// to drain on shutdown.
func Listen(ctx context.Context, cfg shared.ServerConfig, router http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
