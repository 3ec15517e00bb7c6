package status

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/autosave"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/core"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// MessageType represents the type of status message
type MessageType int

const (
	Info MessageType = iota
	Warning
	Error
	Success
)

// StatusMessage represents a transient status bar message
type StatusMessage struct {
	Content   string
	Type      MessageType
	Timestamp time.Time
}

// relTimeInterval is how often the "saved 2m ago" display refreshes.
const relTimeInterval = 10 * time.Second

// Component implements the status bar: the save state on the left, context
// in the middle, transient messages on the right.
type Component struct {
	width int

	save       autosave.Status
	autosaveOn bool
	spinner    spinner.Model
	relTimer   *core.Timer

	context string

	message    *StatusMessage
	clearAfter time.Duration
}

// New creates a new status bar component
func New() *Component {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	return &Component{
		autosaveOn: true,
		spinner:    s,
		relTimer:   core.NewTimer("status.reltime", relTimeInterval),
		clearAfter: 5 * time.Second,
	}
}

// SetSaveStatus updates the save state segment. It returns a command that
// keeps the spinner animating while a save is in flight.
func (c *Component) SetSaveStatus(st autosave.Status) tea.Cmd {
	wasSaving := c.save.Saving
	c.save = st
	if st.Saving && !wasSaving {
		return c.spinner.Tick
	}
	return nil
}

// SetAutosaveEnabled toggles the "autosave off" hint.
func (c *Component) SetAutosaveEnabled(enabled bool) {
	c.autosaveOn = enabled
}

// SaveStatus returns the currently displayed save state.
func (c *Component) SaveStatus() autosave.Status {
	return c.save
}

// SetContext sets the middle segment, usually "user · organization".
func (c *Component) SetContext(context string) {
	c.context = context
}

// SetMessage sets a transient message with the given type
func (c *Component) SetMessage(content string, msgType MessageType) tea.Cmd {
	c.message = &StatusMessage{
		Content:   content,
		Type:      msgType,
		Timestamp: time.Now(),
	}

	// Clear the message after the timeout
	return tea.Tick(c.clearAfter, func(t time.Time) tea.Msg {
		return clearMessageMsg{timestamp: c.message.Timestamp}
	})
}

// ShowInfo shows an info message
func (c *Component) ShowInfo(message string) tea.Cmd {
	return c.SetMessage(message, Info)
}

// ShowWarning shows a warning message
func (c *Component) ShowWarning(message string) tea.Cmd {
	return c.SetMessage(message, Warning)
}

// ShowError shows an error message
func (c *Component) ShowError(message string) tea.Cmd {
	return c.SetMessage(message, Error)
}

// ShowSuccess shows a success message
func (c *Component) ShowSuccess(message string) tea.Cmd {
	return c.SetMessage(message, Success)
}

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	return nil
}

// clearMessageMsg is sent when a status message should be cleared
type clearMessageMsg struct {
	timestamp time.Time
}

// Init implements the Component interface
func (c *Component) Init() tea.Cmd {
	return c.relTimer.Start()
}

// Update implements the Component interface
func (c *Component) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearMessageMsg:
		// Only clear if this is for the current message
		if c.message != nil && msg.timestamp.Equal(c.message.Timestamp) {
			c.message = nil
		}

	case core.TickMsg:
		// Keeps the relative save time fresh
		if cmd := c.relTimer.Update(msg); cmd != nil {
			return c, cmd
		}

	case spinner.TickMsg:
		if c.save.Saving {
			var cmd tea.Cmd
			c.spinner, cmd = c.spinner.Update(msg)
			return c, cmd
		}
	}

	return c, nil
}

// View implements the Component interface
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()

	statusStyle := lipgloss.NewStyle().
		Width(c.width).
		Height(1).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase).
		Padding(0, 1)

	leftContent := c.saveSegment()
	if c.context != "" {
		if leftContent != "" {
			leftContent += "  " + c.context
		} else {
			leftContent = c.context
		}
	}

	availableWidth := c.width - 2 // Account for padding

	rightContent := ""
	if c.message != nil {
		// Leave room for the left segment before styling the message.
		maxMsg := availableWidth - lipgloss.Width(leftContent) - 2
		rightContent = c.formatMessage(maxMsg)
	}

	plainLeft := lipgloss.Width(leftContent)
	plainRight := lipgloss.Width(rightContent)

	content := leftContent
	if rightContent != "" {
		spacesNeeded := availableWidth - plainLeft - plainRight
		if spacesNeeded > 0 {
			content += fmt.Sprintf("%*s%s", spacesNeeded, "", rightContent)
		} else {
			content += " " + rightContent
		}
	}

	return statusStyle.Render(content)
}

// saveSegment renders the autosave state: spinner while saving, unsaved
// marker, failure notice, or how long ago the last save landed.
func (c *Component) saveSegment() string {
	theme := styles.CurrentTheme()
	s := theme.S()

	if !c.autosaveOn {
		seg := s.Subtle.Render("autosave off")
		if c.save.Dirty {
			seg += " " + s.Warning.Render(styles.UnsavedIcon+" unsaved")
		}
		return seg
	}

	switch {
	case c.save.Saving:
		return c.spinner.View() + s.Muted.Render(" saving")

	case c.save.Err != nil:
		return s.Error.Render(styles.ErrorIcon + " save failed")

	case c.save.Dirty:
		return s.Warning.Render(styles.UnsavedIcon + " unsaved")

	case !c.save.LastSavedAt.IsZero():
		return s.Success.Render(styles.SavedIcon) +
			s.Muted.Render(" saved "+core.FormatRelative(c.save.LastSavedAt, time.Now()))

	default:
		return ""
	}
}

// formatMessage formats the transient message with appropriate styling,
// truncating the content to fit in max cells.
func (c *Component) formatMessage(max int) string {
	if c.message == nil || max <= 0 {
		return ""
	}

	content := c.message.Content
	if len(content)+2 > max && max > 5 {
		content = content[:max-5] + "..."
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	switch c.message.Type {
	case Success:
		return s.Success.Render(styles.CheckIcon + " " + content)
	case Warning:
		return s.Warning.Render(styles.WarningIcon + " " + content)
	case Error:
		return s.Error.Render(styles.ErrorIcon + " " + content)
	default: // Info
		return content
	}
}
