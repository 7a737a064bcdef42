package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hireflow-dev/hireflow/internal/entity"
	"github.com/hireflow-dev/hireflow/internal/observability"
)

// Memory coordinates concurrent access to session records. It serializes
// turns per session with a lock map, recovers from corrupt records by
// starting the session over, and runs a cron-driven expiry sweep.
type Memory struct {
	store Store
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*sessionLock

	cron *cron.Cron
}

// sessionLock is a refcounted per-session mutex. The refcount guarantees
// every waiter contends on the same mutex: an entry leaves the map only
// when no goroutine holds a reference, so a delete can never strand a
// waiter on an orphaned lock.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewMemory wraps store with per-session locking. ttl is the inactivity
// window after which the sweeper removes a session (0 = never expire).
func NewMemory(store Store, ttl time.Duration) *Memory {
	return &Memory{
		store: store,
		ttl:   ttl,
		locks: make(map[string]*sessionLock),
	}
}

// acquire takes the per-session lock, creating the entry on first use.
func (m *Memory) acquire(sessionID string) *sessionLock {
	m.mu.Lock()
	l, ok := m.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		m.locks[sessionID] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return l
}

// release unlocks and drops the entry once the last reference is gone,
// keeping the map bounded by the number of in-flight sessions.
func (m *Memory) release(sessionID string, l *sessionLock) {
	l.mu.Unlock()

	m.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, sessionID)
	}
	m.mu.Unlock()
}

// Get returns the session record, creating a fresh one when the session is
// unknown. A corrupt record is dropped and replaced with a fresh session
// rather than failing the turn.
func (m *Memory) Get(ctx context.Context, sessionID string) (*Record, error) {
	record, err := m.store.Load(ctx, sessionID)
	switch {
	case err == nil:
		return record, nil
	case errors.Is(err, ErrSessionNotFound):
		return NewRecord(sessionID), nil
	case errors.Is(err, ErrCorruptRecord):
		log.Printf("session %s: dropping corrupt record, starting over: %v", sessionID, err)
		if delErr := m.store.Delete(ctx, sessionID); delErr != nil {
			log.Printf("session %s: delete corrupt record: %v", sessionID, delErr)
		}
		return NewRecord(sessionID), nil
	default:
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
}

// Update runs fn against the session record under the per-session lock and
// persists the result. Concurrent turns for the same session serialize;
// turns for different sessions proceed independently.
func (m *Memory) Update(ctx context.Context, sessionID string, fn func(*Record) error) (*Record, error) {
	l := m.acquire(sessionID)
	defer m.release(sessionID, l)

	record, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(record); err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return record, nil
}

// Append adds a message to the session transcript.
func (m *Memory) Append(ctx context.Context, sessionID, role, text string) (*Record, error) {
	return m.Update(ctx, sessionID, func(r *Record) error {
		r.Append(role, text)
		return nil
	})
}

// MergeEntities fuses extracted attributes into the session state by
// confidence. Merging the same extraction twice leaves the state unchanged.
func (m *Memory) MergeEntities(ctx context.Context, sessionID string, e entity.Entities) (*Record, error) {
	return m.Update(ctx, sessionID, func(r *Record) error {
		r.Entities = entity.Merge(r.Entities, e)
		return nil
	})
}

// GetStage returns the session's current stage.
func (m *Memory) GetStage(ctx context.Context, sessionID string) (Stage, error) {
	record, err := m.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return record.Stage, nil
}

// SetStage moves the session to the given stage.
func (m *Memory) SetStage(ctx context.Context, sessionID string, stage Stage) (*Record, error) {
	if !ValidStage(stage) {
		return nil, fmt.Errorf("invalid stage %q", stage)
	}
	return m.Update(ctx, sessionID, func(r *Record) error {
		r.Stage = stage
		return nil
	})
}

// Expire removes sessions last active before the cutoff, regardless of the
// configured TTL.
func (m *Memory) Expire(ctx context.Context, cutoff time.Time) (int, error) {
	return m.store.DeleteOlderThan(ctx, cutoff)
}

// Delete removes a session. Its lock entry drops out of the map once the
// last holder releases it.
func (m *Memory) Delete(ctx context.Context, sessionID string) error {
	l := m.acquire(sessionID)
	defer m.release(sessionID, l)

	return m.store.Delete(ctx, sessionID)
}

// List returns all session IDs.
func (m *Memory) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Sweep removes sessions idle longer than the TTL. Returns how many were
// removed. A zero TTL disables sweeping.
func (m *Memory) Sweep(ctx context.Context) (int, error) {
	if m.ttl <= 0 {
		return 0, nil
	}
	removed, err := m.store.DeleteOlderThan(ctx, time.Now().UTC().Add(-m.ttl))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		observability.SessionsExpired.Add(float64(removed))
		log.Printf("session sweep: removed %d expired sessions", removed)
	}
	return removed, nil
}

// StartSweeper schedules Sweep on the given cron spec (e.g. "@every 5m").
func (m *Memory) StartSweeper(spec string) error {
	if m.ttl <= 0 {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := m.Sweep(ctx); err != nil {
			log.Printf("session sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}
	c.Start()
	m.cron = c
	return nil
}

// Close stops the sweeper and closes the underlying store.
func (m *Memory) Close() error {
	if m.cron != nil {
		m.cron.Stop()
	}
	return m.store.Close()
}
