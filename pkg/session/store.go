package session

import (
	"context"
	"errors"
	"time"
)

// Common errors for store operations.
var (
	// ErrSessionNotFound is returned when a session doesn't exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("session store is closed")
	// ErrCorruptRecord is returned when a stored record cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt session record")
)

// Store abstracts session persistence.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save creates or updates a session record.
	Save(ctx context.Context, record *Record) error

	// Load retrieves a session record by ID.
	// Returns ErrSessionNotFound if the session doesn't exist.
	Load(ctx context.Context, sessionID string) (*Record, error)

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns all session IDs, sorted.
	List(ctx context.Context) ([]string, error)

	// DeleteOlderThan removes sessions whose last activity is before the
	// cutoff and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
