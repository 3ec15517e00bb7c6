// Package guidepanel shows first-run guidance for a screen: a short markdown
// tip rendered in a bordered panel. Dismissals persist, so each tip appears
// once per profile until restored from settings.
package guidepanel

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/guidance"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/core"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// Tip is one guidance entry.
type Tip struct {
	ID    string
	Title string
	Body  string // markdown
}

// Built-in tip IDs.
const (
	TipCases   = "tip.cases"
	TipEditor  = "tip.editor"
	TipBilling = "tip.billing"
)

// DefaultTips returns the built-in guidance shown on first visits.
func DefaultTips() []Tip {
	return []Tip{
		{
			ID:    TipCases,
			Title: "Your case list",
			Body: "Cases assigned to you appear here.\n\n" +
				"- Press **enter** to open a case\n" +
				"- Press **/** to filter by number or subject\n" +
				"- Press **c** to choose which columns are shown",
		},
		{
			ID:    TipEditor,
			Title: "Editing a case",
			Body: "Changes save themselves: stop typing for a moment and the " +
				"draft is written to the server.\n\n" +
				"- The status bar shows `● unsaved`, then `saving`, then `✓ saved`\n" +
				"- Press **ctrl+s** to save immediately\n" +
				"- Press **ctrl+t** to change the case status",
		},
		{
			ID:    TipBilling,
			Title: "Billing history",
			Body: "Every invoice issued to your organization, newest first. " +
				"Scroll with the arrow keys or the mouse wheel.",
		},
	}
}

// Component renders the active tip, if any.
type Component struct {
	tracker *guidance.Tracker
	tips    map[string]Tip

	width  int
	active string // tip ID currently offered, "" when none
}

var _ core.Component = (*Component)(nil)

// New creates the panel. Pass the tips the app wants to offer; screens then
// activate them by ID.
func New(tracker *guidance.Tracker, tips []Tip) *Component {
	byID := make(map[string]Tip, len(tips))
	for _, tip := range tips {
		byID[tip.ID] = tip
	}
	return &Component{
		tracker: tracker,
		tips:    byID,
	}
}

// Show offers a tip. Already-dismissed tips stay hidden.
func (c *Component) Show(tipID string) {
	if _, ok := c.tips[tipID]; !ok {
		c.active = ""
		return
	}
	c.active = tipID
}

// Hide clears the offered tip without dismissing it; it will come back the
// next time the screen is shown.
func (c *Component) Hide() {
	c.active = ""
}

// Dismiss permanently dismisses the visible tip. Returns the dismissed tip
// ID, empty when nothing was visible.
func (c *Component) Dismiss() (string, error) {
	if !c.Visible() {
		return "", nil
	}
	id := c.active
	c.active = ""
	if err := c.tracker.Dismiss(id); err != nil {
		return "", err
	}
	return id, nil
}

// Visible reports whether a tip would currently render.
func (c *Component) Visible() bool {
	if c.active == "" {
		return false
	}
	return !c.tracker.Dismissed(c.active)
}

// SetWidth sets the rendering width.
func (c *Component) SetWidth(width int) {
	c.width = width
}

// Init implements the Component interface
func (c *Component) Init() tea.Cmd {
	return nil
}

// Update implements the Component interface
func (c *Component) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return c, nil
}

// View implements the Component interface
func (c *Component) View() string {
	if !c.Visible() || c.width == 0 {
		return ""
	}

	tip := c.tips[c.active]
	theme := styles.CurrentTheme()
	s := theme.S()

	innerWidth := c.width - 6
	if innerWidth < 20 {
		innerWidth = 20
	}

	body := tip.Body
	if r := styles.GetMarkdownRenderer(innerWidth); r != nil {
		if rendered, err := r.Render(tip.Body); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}

	title := s.Info.Render(styles.HintIcon + " " + tip.Title)
	footer := s.Subtle.Render("ctrl+g dismiss")

	panel := s.Border.
		BorderForeground(theme.Info).
		Padding(0, 1).
		Width(c.width - 2)

	return panel.Render(title + "\n" + body + "\n" + footer)
}
