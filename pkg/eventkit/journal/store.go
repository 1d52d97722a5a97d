// Package journal provides persistent audit storage for dispatch passes.
package journal

import (
	"context"
	"errors"
	"time"
)

// Record describes one completed dispatch pass.
type Record struct {
	// ID uniquely identifies the record (UUID). Filled by Append when empty.
	ID string
	// Category is the dispatched event category, formatted for storage.
	Category string
	// At is when the pass started.
	At time.Time
	// Handlers is the number of handlers invoked during the pass.
	Handlers int
	// Mismatches is the number of handlers skipped on signature mismatch.
	Mismatches int
	// Error holds the dispatch error text, empty on success.
	Error string
	// Duration is the wall-clock duration of the pass.
	Duration time.Duration
}

// Store persists dispatch records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores a record. Generates a UUID when rec.ID is empty.
	Append(ctx context.Context, rec Record) error

	// Get retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id string) (Record, error)

	// List returns records ordered most recent first. An empty category
	// matches all categories; limit <= 0 means no limit.
	List(ctx context.Context, category string, limit int) ([]Record, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// Prune removes records older than the cutoff and reports how many
	// were removed.
	Prune(ctx context.Context, before time.Time) (int64, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("journal record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
