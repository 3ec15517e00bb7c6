// Package caseform is the case editor: subject, status, and investigation
// notes. The root model reads the assembled draft after every update and
// feeds it to the autosave coordinator, so edits persist without an explicit
// save action.
package caseform

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/api"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/core"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// statusCycle is the order ctrl+t walks through.
var statusCycle = []string{
	api.CaseStatusOpen,
	api.CaseStatusPending,
	api.CaseStatusClosed,
	api.CaseStatusArchived,
}

const (
	focusSubject = iota
	focusNotes
)

// Component is the case editor form.
type Component struct {
	width  int
	height int

	caseID string
	number string
	status string
	tags   []string

	subject textinput.Model
	notes   textarea.Model

	focusIdx int
	loaded   bool
}

var _ core.Component = (*Component)(nil)
var _ core.Sizeable = (*Component)(nil)

// New creates an empty case editor. Call SetCase before showing it.
func New() *Component {
	ti := textinput.New()
	ti.Placeholder = "Case subject"
	ti.Prompt = ""
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "Investigation notes (markdown)"
	ta.Prompt = ""
	ta.CharLimit = -1
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(true)

	c := &Component{
		subject:  ti,
		notes:    ta,
		focusIdx: focusNotes,
	}
	c.applyFocus()
	return c
}

// SetCase loads a case into the editor. When a stored draft exists it wins
// over the persisted case fields, resuming the interrupted edit.
func (c *Component) SetCase(cs api.Case, draft api.CaseDraft, hasDraft bool) {
	if !hasDraft {
		draft = api.DraftFromCase(cs)
	}
	c.caseID = draft.CaseID
	c.number = cs.Number
	c.status = draft.Status
	c.tags = draft.Tags
	c.subject.SetValue(draft.Subject)
	c.notes.SetValue(draft.Notes)
	c.loaded = true
}

// Loaded reports whether a case is currently loaded.
func (c *Component) Loaded() bool {
	return c.loaded
}

// CaseID returns the loaded case's ID, empty when nothing is loaded.
func (c *Component) CaseID() string {
	return c.caseID
}

// Draft assembles the current editor contents. Equal edits assemble equal
// drafts, which is what lets the autosave coordinator skip no-op observes.
func (c *Component) Draft() api.CaseDraft {
	return api.CaseDraft{
		CaseID:  c.caseID,
		Subject: c.subject.Value(),
		Status:  c.status,
		Notes:   c.notes.Value(),
		Tags:    c.tags,
	}
}

// Init implements the Component interface
func (c *Component) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements the Component interface
func (c *Component) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !c.loaded {
		return c, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab":
			if c.focusIdx == focusSubject {
				c.focusIdx = focusNotes
			} else {
				c.focusIdx = focusSubject
			}
			return c, c.applyFocus()

		case "ctrl+t":
			c.status = nextStatus(c.status)
			return c, nil
		}
	}

	var cmd tea.Cmd
	if c.focusIdx == focusSubject {
		c.subject, cmd = c.subject.Update(msg)
	} else {
		c.notes, cmd = c.notes.Update(msg)
	}
	return c, cmd
}

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	c.height = height

	inner := width - 4 // borders and padding
	if inner < 10 {
		inner = 10
	}
	c.notes.SetWidth(inner)

	// Title, subject block, status line, and hints take 7 rows.
	notesHeight := height - 7
	if notesHeight < 3 {
		notesHeight = 3
	}
	c.notes.SetHeight(notesHeight)
	return nil
}

// View implements the Component interface
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	if !c.loaded {
		return s.Muted.Render("Select a case to start editing.")
	}

	title := s.Title.Render("Case "+c.number) + "  " + c.statusBadge()

	subjectStyle := s.Input
	notesStyle := s.Input
	if c.focusIdx == focusSubject {
		subjectStyle = s.InputFocused
	} else {
		notesStyle = s.InputFocused
	}

	subject := subjectStyle.Width(c.width - 2).Render(c.subject.View())
	notes := notesStyle.Width(c.width - 2).Render(c.notes.View())

	hints := s.Subtle.Render("tab focus · ctrl+t status · ctrl+s save now · esc back")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subject,
		notes,
		hints,
	)
}

func (c *Component) statusBadge() string {
	theme := styles.CurrentTheme()
	s := theme.S()

	icon := styles.OpenCaseIcon
	style := s.Info
	switch c.status {
	case api.CaseStatusPending:
		icon = styles.PendingCaseIcon
		style = s.Warning
	case api.CaseStatusClosed:
		icon = styles.ClosedCaseIcon
		style = s.Success
	case api.CaseStatusArchived:
		icon = styles.ArchivedCaseIcon
		style = s.Muted
	}
	return style.Render(icon + " " + strings.ToUpper(c.status))
}

func (c *Component) applyFocus() tea.Cmd {
	if c.focusIdx == focusSubject {
		c.notes.Blur()
		return c.subject.Focus()
	}
	c.subject.Blur()
	return c.notes.Focus()
}

func nextStatus(current string) string {
	for i, st := range statusCycle {
		if st == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}
