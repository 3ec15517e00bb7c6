// Package guidance remembers which first-run tips the user has dismissed, so
// onboarding hints appear once per profile rather than on every launch.
package guidance

import (
	"fmt"
	"sync"
	"time"

	"github.com/emerginginv/trace-aid-sub006/internal/storage"
)

// Tracker records tip dismissals keyed by tip ID. Dismissals persist across
// sessions through the backing store. Safe for concurrent use.
type Tracker struct {
	store storage.Store
	key   string

	mu        sync.Mutex
	dismissed map[string]time.Time
	now       func() time.Time
}

// NewTracker loads the dismissal record stored under key. A missing or
// unreadable record starts with every tip still active.
func NewTracker(store storage.Store, key string) (*Tracker, error) {
	t := &Tracker{
		store:     store,
		key:       key,
		dismissed: make(map[string]time.Time),
		now:       time.Now,
	}
	found, err := storage.GetJSON(store, key, &t.dismissed)
	if err != nil {
		return nil, fmt.Errorf("failed to load guidance state: %w", err)
	}
	if !found || t.dismissed == nil {
		t.dismissed = make(map[string]time.Time)
	}
	return t, nil
}

// Dismissed reports whether the tip has been dismissed.
func (t *Tracker) Dismissed(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.dismissed[id]
	return ok
}

// DismissedAt returns when the tip was dismissed, if it was.
func (t *Tracker) DismissedAt(id string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	at, ok := t.dismissed[id]
	return at, ok
}

// Dismiss marks a tip as seen and persists the record. Dismissing an
// already-dismissed tip keeps the original timestamp.
func (t *Tracker) Dismiss(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.dismissed[id]; ok {
		return nil
	}
	t.dismissed[id] = t.now().UTC()
	return t.persistLocked()
}

// Restore brings a dismissed tip back, used by the settings option to replay
// onboarding. Restoring an active tip is a no-op.
func (t *Tracker) Restore(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.dismissed[id]; !ok {
		return nil
	}
	delete(t.dismissed, id)
	return t.persistLocked()
}

// Reset clears every dismissal.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dismissed = make(map[string]time.Time)
	return t.persistLocked()
}

func (t *Tracker) persistLocked() error {
	if err := storage.SetJSON(t.store, t.key, t.dismissed); err != nil {
		return fmt.Errorf("failed to save guidance state: %w", err)
	}
	return nil
}
