// Package header renders the top bar: the wordmark, the navigation
// breadcrumb trail, and the signed-in identity.
package header

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/nav"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// maxCrumbs bounds the trail so deep navigation cannot crowd the bar.
const maxCrumbs = 4

// Component is the header bar.
type Component struct {
	width int

	crumbs   []nav.Entry
	identity string
}

// New creates a header component.
func New() *Component {
	return &Component{}
}

// SetCrumbs replaces the breadcrumb trail.
func (c *Component) SetCrumbs(crumbs []nav.Entry) {
	c.crumbs = crumbs
}

// SetIdentity sets the right-aligned identity segment, e.g. "dana@acme".
func (c *Component) SetIdentity(identity string) {
	c.identity = identity
}

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	return nil
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
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	barStyle := lipgloss.NewStyle().
		Width(c.width).
		Height(1).
		Background(theme.BgSubtle).
		Padding(0, 1)

	left := styles.RenderThemeGradient("Trace-Aid", true)
	if trail := c.trail(); trail != "" {
		left += s.Subtle.Render("  "+styles.CrumbSeparator+"  ") + trail
	}

	right := ""
	if c.identity != "" {
		right = s.Muted.Render(c.identity)
	}

	gap := c.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = 0
	}

	return barStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// trail renders the last few breadcrumbs, current location last and bold.
func (c *Component) trail() string {
	if len(c.crumbs) == 0 {
		return ""
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	crumbs := c.crumbs
	if len(crumbs) > maxCrumbs {
		crumbs = crumbs[len(crumbs)-maxCrumbs:]
	}

	sep := s.Subtle.Render(" " + styles.CrumbSeparator + " ")
	parts := make([]string, 0, len(crumbs))
	for i, crumb := range crumbs {
		title := crumb.Title
		if title == "" {
			title = crumb.Screen
		}
		if i == len(crumbs)-1 {
			parts = append(parts, s.Bold.Render(title))
		} else {
			parts = append(parts, s.Muted.Render(title))
		}
	}
	return strings.Join(parts, sep)
}
