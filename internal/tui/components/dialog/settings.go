package dialog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/tui/events"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// Settings is the editable subset of the app configuration. RestoreTips is
// an action rather than a stored value: saving with it set brings dismissed
// guidance panels back.
type Settings struct {
	ServerURL       string
	Theme           string
	Autosave        bool
	AutosaveDelayMS int
	PollIntervalS   int
	RestoreTips     bool
}

type settingField struct {
	label       string
	description string
	fieldType   string // "text", "bool", "select"
	value       interface{}
	options     []string // for select fields
	input       *SimpleTextInput
	editing     bool
}

// SettingsDialog edits the app configuration in place. Saving hands the new
// values back through the dialog result; the root model persists them.
type SettingsDialog struct {
	*BaseDialog

	fields        []settingField
	selectedIndex int
	eventBroker   *events.Broker
	originalTheme string
}

// Labels for the delay and poll selects, mapped to their numeric values.
var (
	delayOptions = map[string]int{"1s": 1000, "2s": 2000, "5s": 5000, "10s": 10000}
	pollOptions  = map[string]int{"30s": 30, "60s": 60, "5m": 300}
)

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(eventBroker *events.Broker) *SettingsDialog {
	d := &SettingsDialog{
		BaseDialog:  NewBaseDialog("Settings"),
		eventBroker: eventBroker,
	}
	d.initFields()
	return d
}

func (d *SettingsDialog) initFields() {
	serverInput := NewSimpleTextInput()
	serverInput.Placeholder("http://localhost:8787")

	d.fields = []settingField{
		{
			label:       "Server URL",
			description: "Trace-Aid backend endpoint",
			fieldType:   "text",
			value:       "",
			input:       serverInput,
		},
		{
			label:       "Theme",
			description: "Color theme for the interface",
			fieldType:   "select",
			value:       "harbor",
			options:     styles.DefaultManager().List(),
		},
		{
			label:       "Autosave",
			description: "Save case drafts automatically while editing",
			fieldType:   "bool",
			value:       true,
		},
		{
			label:       "Autosave delay",
			description: "How long to wait after the last edit",
			fieldType:   "select",
			value:       "2s",
			options:     []string{"1s", "2s", "5s", "10s"},
		},
		{
			label:       "Refresh interval",
			description: "How often case and billing data is refetched",
			fieldType:   "select",
			value:       "60s",
			options:     []string{"30s", "60s", "5m"},
		},
		{
			label:       "Show tips again",
			description: "Bring back dismissed guidance panels on save",
			fieldType:   "bool",
			value:       false,
		},
	}
}

// Open opens the dialog, remembering the active theme so cancel can restore
// it after a live preview.
func (d *SettingsDialog) Open() tea.Cmd {
	d.originalTheme = styles.DefaultManager().Current().Name
	d.selectedIndex = 0
	return d.BaseDialog.Open()
}

// Init initializes the dialog
func (d *SettingsDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *SettingsDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !d.isOpen {
		return d, nil
	}

	var cmds []tea.Cmd

	if d.selectedIndex < len(d.fields) && d.fields[d.selectedIndex].editing {
		field := &d.fields[d.selectedIndex]
		if field.fieldType == "text" {
			cmds = append(cmds, field.input.Update(msg))
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While editing a text field only enter and esc are special
		if d.selectedIndex < len(d.fields) && d.fields[d.selectedIndex].editing {
			field := &d.fields[d.selectedIndex]
			switch msg.String() {
			case "enter":
				field.value = field.input.Value()
				field.editing = false
				field.input.Blur()
			case "esc":
				field.editing = false
				field.input.Blur()
				field.input.SetValue(field.value.(string))
			default:
				return d, tea.Batch(cmds...)
			}
			return d, tea.Batch(cmds...)
		}

		switch msg.String() {
		case "esc", "q":
			d.revertPreview()
			return d, d.HandleEscape()
		case "up", "k":
			if d.selectedIndex > 0 {
				d.selectedIndex--
			}
		case "down", "j":
			if d.selectedIndex < len(d.fields)-1 {
				d.selectedIndex++
			}
		case "enter", "space":
			d.activateField()
		case "s":
			settings := d.getSettings()
			d.SetResult(settings)
			if d.eventBroker != nil {
				d.eventBroker.PublishAsync(events.Event{
					Type: events.StatusMessageEvent,
					Payload: events.StatusMessagePayload{
						Message: "Settings saved",
						Type:    "success",
					},
				})
			}
			return d, d.Close()
		}
	}

	return d, tea.Batch(cmds...)
}

func (d *SettingsDialog) activateField() {
	if d.selectedIndex >= len(d.fields) {
		return
	}
	field := &d.fields[d.selectedIndex]
	switch field.fieldType {
	case "text":
		field.editing = true
		field.input.Focus()
	case "bool":
		field.value = !field.value.(bool)
	case "select":
		current := field.value.(string)
		idx := 0
		for i, opt := range field.options {
			if opt == current {
				idx = i
				break
			}
		}
		field.value = field.options[(idx+1)%len(field.options)]

		// Theme changes preview immediately
		if field.label == "Theme" {
			styles.DefaultManager().SetTheme(field.value.(string))
		}
	}
}

func (d *SettingsDialog) revertPreview() {
	if d.originalTheme != "" {
		styles.DefaultManager().SetTheme(d.originalTheme)
	}
}

// View renders the dialog
func (d *SettingsDialog) View() string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()

	var items []string
	for i, field := range d.fields {
		var item string

		if i == d.selectedIndex {
			item = s.Info.Render("▶ ")
		} else {
			item = "  "
		}

		item += s.Bold.Render(field.label) + ": "

		switch field.fieldType {
		case "text":
			if field.editing {
				item += field.input.View()
			} else if v := field.value.(string); v != "" {
				item += s.Text.Render(v)
			} else {
				item += s.Muted.Render("(not set)")
			}
		case "bool":
			if field.value.(bool) {
				item += s.Success.Render(styles.CheckIcon + " on")
			} else {
				item += s.Muted.Render(styles.ErrorIcon + " off")
			}
		case "select":
			item += s.Text.Render(fmt.Sprintf("%v", field.value))
		}

		if field.description != "" {
			item += "\n  " + s.Subtle.Render(field.description)
		}

		items = append(items, item)
	}

	footer := s.Subtle.Render("↑/↓ navigate · enter change · s save · esc cancel")

	return d.RenderDialog(strings.Join(items, "\n\n") + "\n\n" + footer)
}

func (d *SettingsDialog) getSettings() *Settings {
	delay := delayOptions[d.fields[3].value.(string)]
	if delay == 0 {
		delay = 2000
	}
	poll := pollOptions[d.fields[4].value.(string)]
	if poll == 0 {
		poll = 60
	}
	return &Settings{
		ServerURL:       d.fields[0].value.(string),
		Theme:           d.fields[1].value.(string),
		Autosave:        d.fields[2].value.(bool),
		AutosaveDelayMS: delay,
		PollIntervalS:   poll,
		RestoreTips:     d.fields[5].value.(bool),
	}
}

// SetSettings updates the dialog with current settings
func (d *SettingsDialog) SetSettings(settings *Settings) {
	if settings == nil {
		return
	}

	d.fields[0].value = settings.ServerURL
	d.fields[0].input.SetValue(settings.ServerURL)
	d.fields[1].value = settings.Theme
	d.fields[2].value = settings.Autosave
	d.fields[3].value = delayLabel(settings.AutosaveDelayMS)
	d.fields[4].value = pollLabel(settings.PollIntervalS)
	d.fields[5].value = false // one-shot action, never carried over
}

func delayLabel(ms int) string {
	for label, v := range delayOptions {
		if v == ms {
			return label
		}
	}
	return "2s"
}

func pollLabel(s int) string {
	for label, v := range pollOptions {
		if v == s {
			return label
		}
	}
	return "60s"
}
