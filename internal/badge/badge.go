// Package badge composes the terminal window title. It is the terminal
// counterpart of a browser tab's favicon badge: an unsaved-changes marker
// and an attention counter wrap the app name and current context.
package badge

import (
	"fmt"
	"sync"
)

// UnsavedMarker prefixes the title while edits are not yet persisted.
const UnsavedMarker = "●"

// Composer builds window titles like "● Trace-Aid - Case 2026-117 (2)".
// Safe for concurrent use.
type Composer struct {
	app string

	mu        sync.Mutex
	context   string
	unsaved   bool
	attention int
}

// NewComposer creates a Composer for the given application name.
func NewComposer(app string) *Composer {
	return &Composer{app: app}
}

// SetContext sets the current-location suffix, e.g. the open case title.
// Empty clears it. Returns true when the title changed.
func (c *Composer) SetContext(context string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.context == context {
		return false
	}
	c.context = context
	return true
}

// SetUnsaved toggles the unsaved-changes marker. Returns true when the
// title changed.
func (c *Composer) SetUnsaved(unsaved bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsaved == unsaved {
		return false
	}
	c.unsaved = unsaved
	return true
}

// SetAttention sets the pending-notification count shown in the title.
// Negative counts clamp to zero. Returns true when the title changed.
func (c *Composer) SetAttention(n int) bool {
	if n < 0 {
		n = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attention == n {
		return false
	}
	c.attention = n
	return true
}

// Title renders the current window title.
func (c *Composer) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	title := c.app
	if c.context != "" {
		title = fmt.Sprintf("%s - %s", c.app, c.context)
	}
	if c.attention > 0 {
		title = fmt.Sprintf("%s (%d)", title, c.attention)
	}
	if c.unsaved {
		title = UnsavedMarker + " " + title
	}
	return title
}
