package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/tui/events"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// QuitAction is what the user chose in the quit dialog.
type QuitAction int

const (
	QuitCancel QuitAction = iota
	QuitSaveFirst
	QuitDiscard
)

// QuitDialog asks for confirmation before quitting. When there are unsaved
// changes it offers to flush them first.
type QuitDialog struct {
	*BaseDialog

	eventBroker *events.Broker
	unsaved     bool
	selected    int
}

// NewQuitDialog creates a new quit confirmation dialog
func NewQuitDialog(eventBroker *events.Broker) *QuitDialog {
	return &QuitDialog{
		BaseDialog:  NewBaseDialog("Quit Trace-Aid?"),
		eventBroker: eventBroker,
	}
}

// SetUnsaved tells the dialog whether a draft is still unsaved. Must be set
// before opening.
func (d *QuitDialog) SetUnsaved(unsaved bool) {
	d.unsaved = unsaved
}

// Open opens the dialog with the safe option preselected.
func (d *QuitDialog) Open() tea.Cmd {
	d.selected = len(d.options()) - 1 // "Cancel"
	return d.BaseDialog.Open()
}

// Init initializes the dialog
func (d *QuitDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *QuitDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !d.isOpen {
		return d, nil
	}

	options := d.options()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			// Second Ctrl+C forces the exit
			return d, tea.Quit
		case "esc", "n", "N":
			d.SetResult(QuitCancel)
			return d, d.Close()
		case "y", "Y":
			if d.unsaved {
				return d, d.saveAndQuit()
			}
			d.SetResult(QuitDiscard)
			return d, tea.Quit
		case "left", "h":
			d.selected = (d.selected - 1 + len(options)) % len(options)
		case "right", "tab", "l":
			d.selected = (d.selected + 1) % len(options)
		case "enter", "space":
			return d, d.execute(options[d.selected].action)
		}
	}

	return d, nil
}

type quitOption struct {
	label  string
	action QuitAction
}

func (d *QuitDialog) options() []quitOption {
	if d.unsaved {
		return []quitOption{
			{"Save and quit", QuitSaveFirst},
			{"Quit without saving", QuitDiscard},
			{"Cancel", QuitCancel},
		}
	}
	return []quitOption{
		{"Quit", QuitDiscard},
		{"Cancel", QuitCancel},
	}
}

func (d *QuitDialog) execute(action QuitAction) tea.Cmd {
	switch action {
	case QuitSaveFirst:
		return d.saveAndQuit()
	case QuitDiscard:
		d.SetResult(QuitDiscard)
		return tea.Quit
	default:
		d.SetResult(QuitCancel)
		return d.Close()
	}
}

// saveAndQuit hands the exit back to the root model, which flushes the draft
// before quitting.
func (d *QuitDialog) saveAndQuit() tea.Cmd {
	d.SetResult(QuitSaveFirst)
	if d.eventBroker != nil {
		d.eventBroker.PublishAsync(events.Event{
			Type:    events.QuitRequestEvent,
			Payload: events.QuitPayload{SaveFirst: true},
		})
	}
	return d.Close()
}

// View renders the dialog
func (d *QuitDialog) View() string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()

	question := "Are you sure you want to quit?"
	if d.unsaved {
		question = "You have unsaved changes."
	}

	var buttons []string
	for i, opt := range d.options() {
		style := s.Button
		if i == d.selected {
			style = s.ButtonFocused
		}
		if len(buttons) > 0 {
			buttons = append(buttons, "  ")
		}
		buttons = append(buttons, style.Render(opt.label))
	}

	help := "Ctrl+C again to force quit · Esc to cancel"

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		s.Bold.Render(question),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		"",
		s.Subtle.Render(help),
	)

	return d.RenderDialog(content)
}
