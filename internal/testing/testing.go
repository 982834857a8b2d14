// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/desertthunder/songshelf/internal/services"
	"github.com/desertthunder/songshelf/internal/shared"
)

// MockCatalog is a test double for [services.CatalogService]. Each call pops
// the next queued response; an empty queue reports not-found.
type MockCatalog struct {
	Queue   []MockLookup
	Queries []string
}

// MockLookup is one canned SearchTrack response.
type MockLookup struct {
	Track *services.Track
	Err   error
}

func (m *MockCatalog) SearchTrack(ctx context.Context, query string) (*services.Track, error) {
	m.Queries = append(m.Queries, query)

	if len(m.Queue) == 0 {
		return nil, shared.ErrTrackNotFound
	}

	next := m.Queue[0]
	m.Queue = m.Queue[1:]
	return next.Track, next.Err
}

func (m *MockCatalog) Name() string { return "mock" }

// Enqueue appends a canned response to the lookup queue.
func (m *MockCatalog) Enqueue(track *services.Track, err error) {
	m.Queue = append(m.Queue, MockLookup{Track: track, Err: err})
}

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The pool is capped at one connection because each in-memory connection is
// its own database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	db.SetMaxOpenConns(1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
