// Package prefs persists per-view display preferences, such as which table
// columns and side panels are visible. Preferences are stored as explicit
// user overrides: anything the user never touched follows its default, so
// items added in later releases pick up their intended visibility for
// existing profiles.
package prefs

import (
	"fmt"
	"sync"

	"github.com/emerginginv/trace-aid-sub006/internal/storage"
)

// Item is one toggleable element of a view: a table column, a side panel.
type Item struct {
	// ID is the stable identifier persisted in overrides.
	ID string
	// Label is the human-readable name shown in the columns dialog.
	Label string
	// Default is the visibility for profiles with no stored override.
	Default bool
}

// visibilityState is the persisted shape: only deliberate user overrides.
type visibilityState struct {
	Overrides map[string]bool `json:"overrides"`
}

// Visibility tracks the shown/hidden state of a fixed set of items and
// persists every change immediately. Safe for concurrent use.
type Visibility struct {
	store storage.Store
	key   string

	mu        sync.Mutex
	items     []Item
	overrides map[string]bool
}

// NewVisibility loads the stored overrides for key, dropping overrides that
// no longer match a known item. A missing or unreadable entry starts clean.
func NewVisibility(store storage.Store, key string, items []Item) (*Visibility, error) {
	v := &Visibility{
		store:     store,
		key:       key,
		items:     make([]Item, len(items)),
		overrides: make(map[string]bool),
	}
	copy(v.items, items)

	var state visibilityState
	found, err := storage.GetJSON(store, key, &state)
	if err != nil {
		return nil, fmt.Errorf("failed to load visibility prefs: %w", err)
	}
	if found {
		for id, shown := range state.Overrides {
			if v.known(id) {
				v.overrides[id] = shown
			}
		}
	}
	return v, nil
}

// Visible reports whether the item is currently shown. Unknown IDs are
// hidden.
func (v *Visibility) Visible(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visibleLocked(id)
}

// Set shows or hides an item and persists the change. Setting an item back
// to its default removes the override instead of recording a redundant one.
func (v *Visibility) Set(id string, visible bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	item, ok := v.find(id)
	if !ok {
		return fmt.Errorf("unknown visibility item %q", id)
	}
	if visible == item.Default {
		delete(v.overrides, id)
	} else {
		v.overrides[id] = visible
	}
	return v.persistLocked()
}

// Toggle flips an item's visibility and persists the change.
func (v *Visibility) Toggle(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	item, ok := v.find(id)
	if !ok {
		return fmt.Errorf("unknown visibility item %q", id)
	}
	next := !v.visibleLocked(id)
	if next == item.Default {
		delete(v.overrides, id)
	} else {
		v.overrides[id] = next
	}
	return v.persistLocked()
}

// Reset discards all overrides, returning every item to its default.
func (v *Visibility) Reset() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.overrides = make(map[string]bool)
	return v.persistLocked()
}

// Items returns the managed items in their canonical order.
func (v *Visibility) Items() []Item {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Item, len(v.items))
	copy(out, v.items)
	return out
}

// VisibleIDs returns the IDs of the currently shown items in canonical
// order.
func (v *Visibility) VisibleIDs() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []string
	for _, item := range v.items {
		if v.visibleLocked(item.ID) {
			out = append(out, item.ID)
		}
	}
	return out
}

func (v *Visibility) visibleLocked(id string) bool {
	if shown, ok := v.overrides[id]; ok {
		return shown
	}
	item, ok := v.find(id)
	if !ok {
		return false
	}
	return item.Default
}

func (v *Visibility) find(id string) (Item, bool) {
	for _, item := range v.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func (v *Visibility) known(id string) bool {
	_, ok := v.find(id)
	return ok
}

func (v *Visibility) persistLocked() error {
	state := visibilityState{Overrides: v.overrides}
	if err := storage.SetJSON(v.store, v.key, state); err != nil {
		return fmt.Errorf("failed to save visibility prefs: %w", err)
	}
	return nil
}
