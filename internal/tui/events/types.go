package events

import "github.com/emerginginv/trace-aid-sub006/internal/autosave"

// EventType identifies the type of event
type EventType string

const (
	// Save lifecycle events
	SaveStateEvent EventType = "save.state"

	// Resource events, published when a background fetch settles
	ResourceUpdatedEvent EventType = "resource.updated"

	// Case events
	CaseSelectedEvent EventType = "case.selected"
	CaseOpenedEvent   EventType = "case.opened"

	// Preference events
	ColumnsChangedEvent  EventType = "prefs.columns"
	SettingsChangedEvent EventType = "settings.changed"

	// Guidance events
	GuidanceDismissedEvent EventType = "guidance.dismissed"

	// UI events
	StatusMessageEvent EventType = "ui.status"
	ErrorMessageEvent  EventType = "ui.error"
	DialogOpenEvent    EventType = "ui.dialog.open"
	DialogCloseEvent   EventType = "ui.dialog.close"
	FocusChangeEvent   EventType = "ui.focus.change"

	// App events
	QuitRequestEvent EventType = "app.quit"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload interface{}
}

// Event payload types

// SaveStatePayload carries the autosave coordinator's status into the UI.
type SaveStatePayload struct {
	CaseID string
	Status autosave.Status
}

// ResourcePayload names the fetch resource that changed.
type ResourcePayload struct {
	Name string
}

// CasePayload identifies a case for selection and navigation events.
type CasePayload struct {
	CaseID string
	Title  string
}

// StatusMessagePayload is a transient message for the status bar.
type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}

// SettingsChangedPayload reports one changed setting.
type SettingsChangedPayload struct {
	Key   string
	Value string
}

// GuidancePayload identifies a guidance tip.
type GuidancePayload struct {
	TipID string
}

// DialogPayload carries dialog routing information.
type DialogPayload struct {
	DialogID string
	Data     interface{}
}

// QuitPayload asks the root model to exit, optionally flushing unsaved work
// first.
type QuitPayload struct {
	SaveFirst bool
}
