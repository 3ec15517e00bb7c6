package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/prefs"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/events"
)

// DialogType identifies the type of dialog
type DialogType string

const (
	ColumnsDialogType  DialogType = "columns"
	SettingsDialogType DialogType = "settings"
	QuitDialogType     DialogType = "quit"
	HelpDialogType     DialogType = "help"
)

// Manager manages all dialogs in the application
type Manager struct {
	dialogs      map[DialogType]Dialog
	activeDialog DialogType
	eventBroker  *events.Broker
	width        int
	height       int
}

// NewManager creates a new dialog manager. columnVis backs the columns
// dialog for the case list view.
func NewManager(eventBroker *events.Broker, columnVis *prefs.Visibility) *Manager {
	m := &Manager{
		dialogs:     make(map[DialogType]Dialog),
		eventBroker: eventBroker,
	}

	m.dialogs[ColumnsDialogType] = NewColumnsDialog(eventBroker, columnVis)
	m.dialogs[SettingsDialogType] = NewSettingsDialog(eventBroker)
	m.dialogs[QuitDialogType] = NewQuitDialog(eventBroker)
	m.dialogs[HelpDialogType] = NewHelpDialog(eventBroker)

	return m
}

// Init initializes all dialogs
func (m *Manager) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, dialog := range m.dialogs {
		cmds = append(cmds, dialog.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles updates for the active dialog
func (m *Manager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(wsm.Width, wsm.Height)
	}

	if m.activeDialog != "" {
		if dialog, ok := m.dialogs[m.activeDialog]; ok {
			model, cmd := dialog.Update(msg)
			if d, ok := model.(Dialog); ok {
				m.dialogs[m.activeDialog] = d

				if !d.IsOpen() {
					closed := m.activeDialog
					m.activeDialog = ""
					m.eventBroker.PublishAsync(events.Event{
						Type: events.DialogCloseEvent,
						Payload: events.DialogPayload{
							DialogID: string(closed),
							Data:     d.GetResult(),
						},
					})
				}
			}
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the active dialog
func (m *Manager) View() string {
	if m.activeDialog == "" {
		return ""
	}

	if dialog, ok := m.dialogs[m.activeDialog]; ok {
		return dialog.View()
	}

	return ""
}

// SetSize sets the size for all dialogs
func (m *Manager) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	var cmds []tea.Cmd
	for _, dialog := range m.dialogs {
		cmds = append(cmds, dialog.SetSize(width, height))
	}
	return tea.Batch(cmds...)
}

// OpenDialog opens a specific dialog
func (m *Manager) OpenDialog(dialogType DialogType) tea.Cmd {
	if dialog, ok := m.dialogs[dialogType]; ok {
		m.activeDialog = dialogType

		m.eventBroker.PublishAsync(events.Event{
			Type: events.DialogOpenEvent,
			Payload: events.DialogPayload{
				DialogID: string(dialogType),
			},
		})

		return dialog.Open()
	}
	return nil
}

// CloseActiveDialog closes the currently active dialog
func (m *Manager) CloseActiveDialog() tea.Cmd {
	if m.activeDialog != "" {
		if dialog, ok := m.dialogs[m.activeDialog]; ok {
			m.activeDialog = ""
			return dialog.Close()
		}
	}
	return nil
}

// IsDialogOpen returns whether any dialog is open
func (m *Manager) IsDialogOpen() bool {
	return m.activeDialog != ""
}

// GetActiveDialog returns the currently active dialog type
func (m *Manager) GetActiveDialog() DialogType {
	return m.activeDialog
}

// SetUnsaved marks the quit dialog's unsaved state before it opens.
func (m *Manager) SetUnsaved(unsaved bool) {
	if d, ok := m.dialogs[QuitDialogType].(*QuitDialog); ok {
		d.SetUnsaved(unsaved)
	}
}

// SetSettings seeds the settings dialog with the current configuration.
func (m *Manager) SetSettings(settings *Settings) {
	if d, ok := m.dialogs[SettingsDialogType].(*SettingsDialog); ok {
		d.SetSettings(settings)
	}
}
