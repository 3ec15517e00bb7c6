package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/tui/events"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// HelpDialog displays help information
type HelpDialog struct {
	*BaseDialog

	eventBroker *events.Broker
	activeTab   int
	tabs        []string
}

// NewHelpDialog creates a new help dialog
func NewHelpDialog(eventBroker *events.Broker) *HelpDialog {
	return &HelpDialog{
		BaseDialog:  NewBaseDialog("Help"),
		eventBroker: eventBroker,
		tabs:        []string{"Shortcuts", "Autosave", "Tips"},
	}
}

// Init initializes the dialog
func (d *HelpDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *HelpDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !d.isOpen {
		return d, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "?":
			return d, d.Close()
		case "tab", "right", "l":
			d.activeTab = (d.activeTab + 1) % len(d.tabs)
		case "shift+tab", "left", "h":
			d.activeTab = (d.activeTab - 1 + len(d.tabs)) % len(d.tabs)
		case "1":
			d.activeTab = 0
		case "2":
			d.activeTab = 1
		case "3":
			d.activeTab = 2
		}
	}

	return d, nil
}

// View renders the dialog
func (d *HelpDialog) View() string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()

	var tabs []string
	for i, tab := range d.tabs {
		style := s.Subtle.Padding(0, 2)
		if i == d.activeTab {
			style = s.Info.Padding(0, 2).Bold(true).Underline(true)
		}
		tabs = append(tabs, style.Render(tab))
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var content string
	switch d.activeTab {
	case 0:
		content = d.renderShortcuts()
	case 1:
		content = d.renderAutosave()
	case 2:
		content = d.renderTips()
	}

	fullContent := lipgloss.JoinVertical(
		lipgloss.Left,
		tabBar,
		lipgloss.NewStyle().MarginTop(1).Render(content),
	)

	return d.RenderDialog(fullContent)
}

func (d *HelpDialog) renderShortcuts() string {
	shortcuts := [][]string{
		{"Enter", "Open the selected case"},
		{"Esc", "Go back / close dialogs"},
		{"Tab", "Switch between subject and notes"},
		{"Ctrl+S", "Save the draft immediately"},
		{"Ctrl+T", "Cycle the case status"},
		{"Ctrl+G", "Dismiss the guidance panel"},
		{"/", "Filter the case list"},
		{"c", "Choose visible columns"},
		{"b", "Billing history"},
		{"o", "Settings"},
		{"?", "This help"},
		{"Ctrl+C", "Quit"},
	}
	return d.renderRows("Keyboard Shortcuts", shortcuts)
}

func (d *HelpDialog) renderAutosave() string {
	s := styles.CurrentTheme().S()

	lines := []string{
		s.Info.Bold(true).MarginBottom(1).Render("How saving works"),
		s.Text.Render("Edits are saved on their own. After you stop typing for the"),
		s.Text.Render("configured delay, the draft is written to the server."),
		"",
		s.Text.Render("The status bar tells you where things stand:"),
		"  " + s.Warning.Render(styles.UnsavedIcon+" unsaved") + s.Muted.Render("  there are changes not yet written"),
		"  " + s.Info.Render("saving") + s.Muted.Render("          a write is in flight"),
		"  " + s.Success.Render(styles.SavedIcon+" saved") + s.Muted.Render("         everything is on the server"),
		"  " + s.Error.Render(styles.ErrorIcon+" save failed") + s.Muted.Render("   the last write failed; edit again or press Ctrl+S"),
		"",
		s.Text.Render("Quitting with unsaved changes offers to save them first."),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (d *HelpDialog) renderTips() string {
	s := styles.CurrentTheme().S()

	tips := []string{
		"• The case list keeps your selection across background refreshes",
		"• Hidden columns stay hidden next time you start the app",
		"• Dismissed guidance panels can be restored from settings",
		"• A failed refresh keeps showing the last good data",
		"• The window title shows " + styles.UnsavedIcon + " while a draft is unsaved",
	}

	lines := []string{s.Info.Bold(true).MarginBottom(1).Render("Tips")}
	for _, tip := range tips {
		lines = append(lines, s.Muted.Render(tip))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (d *HelpDialog) renderRows(section string, rows [][]string) string {
	s := styles.CurrentTheme().S()

	lines := []string{s.Info.Bold(true).MarginBottom(1).Render(section)}
	for _, row := range rows {
		key := s.Bold.Render(row[0])
		desc := s.Muted.Render(" - " + row[1])
		lines = append(lines, key+desc)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
