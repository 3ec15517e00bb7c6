// Package nav keeps the screen navigation history that feeds the header
// breadcrumb trail and the Esc back behavior.
package nav

import "sync"

// DefaultLimit bounds the history depth when none is configured.
const DefaultLimit = 50

// Entry is one visited location.
type Entry struct {
	// Screen is the stable screen identifier, e.g. "cases" or "case".
	Screen string
	// Title is what the breadcrumb displays, e.g. "Case 2026-117".
	Title string
	// Param carries the screen's subject, such as a case ID. Empty for
	// list screens.
	Param string
}

// History is a bounded navigation stack. The top entry is the current
// location. Safe for concurrent use.
type History struct {
	mu    sync.Mutex
	stack []Entry
	limit int
}

// NewHistory builds an empty history holding at most limit entries. Limits
// <= 0 fall back to DefaultLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Push records a visit. Pushing the current location again replaces it in
// place, so refreshes, re-selections, and title changes do not pollute the
// trail. When the stack is full the oldest entry is dropped.
func (h *History) Push(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.stack); n > 0 {
		top := h.stack[n-1]
		if top.Screen == e.Screen && top.Param == e.Param {
			h.stack[n-1] = e
			return
		}
	}
	h.stack = append(h.stack, e)
	if len(h.stack) > h.limit {
		h.stack = h.stack[len(h.stack)-h.limit:]
	}
}

// Back leaves the current location and returns the one beneath it. The
// second return is false when there is nowhere to go back to; the current
// entry is kept in that case.
func (h *History) Back() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) < 2 {
		return Entry{}, false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.stack[len(h.stack)-1], true
}

// Current returns the active location, if any.
func (h *History) Current() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		return Entry{}, false
	}
	return h.stack[len(h.stack)-1], true
}

// CanGoBack reports whether Back would move anywhere.
func (h *History) CanGoBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack) >= 2
}

// Breadcrumbs returns up to max trailing entries, oldest first, ending with
// the current location. max <= 0 returns the whole trail.
func (h *History) Breadcrumbs(max int) []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	start := 0
	if max > 0 && len(h.stack) > max {
		start = len(h.stack) - max
	}
	out := make([]Entry, len(h.stack)-start)
	copy(out, h.stack[start:])
	return out
}

// Len returns the number of recorded locations.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}

// Clear empties the history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = nil
}
