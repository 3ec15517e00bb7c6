// Package billing renders the organization's invoice history as a scrollable
// read-only ledger.
package billing

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/api"
	"github.com/emerginginv/trace-aid-sub006/internal/fetch"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/core"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// Component is the billing history screen.
type Component struct {
	width  int
	height int

	viewport viewport.Model
	snap     fetch.Snapshot[[]api.Invoice]
}

var _ core.Component = (*Component)(nil)
var _ core.Sizeable = (*Component)(nil)

// New creates an empty billing view.
func New() *Component {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	return &Component{viewport: vp}
}

// Init implements the Component interface
func (c *Component) Init() tea.Cmd {
	return nil
}

// Update implements the Component interface
func (c *Component) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	c.height = height

	vpHeight := height - 2 // title and status line
	if vpHeight < 3 {
		vpHeight = 3
	}
	c.viewport = viewport.New(
		viewport.WithWidth(width),
		viewport.WithHeight(vpHeight),
	)
	c.viewport.MouseWheelEnabled = true
	c.viewport.SetContent(c.renderLedger())
	return nil
}

// SetInvoices replaces the ledger contents from a fresh resource snapshot.
func (c *Component) SetInvoices(snap fetch.Snapshot[[]api.Invoice]) {
	c.snap = snap
	c.viewport.SetContent(c.renderLedger())
}

// View implements the Component interface
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	s := styles.CurrentTheme().S()
	title := s.Title.Render("Billing history")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		c.statusLine(),
		c.viewport.View(),
	)
}

func (c *Component) statusLine() string {
	s := styles.CurrentTheme().S()

	switch {
	case c.snap.Err != nil && len(c.snap.Data) > 0:
		return s.Warning.Render("⚠ refresh failed, showing cached invoices")
	case c.snap.Err != nil:
		return s.Error.Render("✗ " + c.snap.Err.Error())
	case c.snap.Loading && !c.snap.Ready():
		return s.Muted.Render("Loading invoices...")
	default:
		return s.Subtle.Render(fmt.Sprintf("%d invoices · total %s",
			len(c.snap.Data), c.total()))
	}
}

func (c *Component) renderLedger() string {
	if len(c.snap.Data) == 0 {
		if c.snap.Ready() {
			return styles.CurrentTheme().S().Muted.Render("No invoices yet.")
		}
		return ""
	}

	s := styles.CurrentTheme().S()
	var b strings.Builder
	for i, inv := range c.snap.Data {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%-12s  %-12s  %12s  %s",
			inv.Number,
			inv.IssuedAt.Format("2006-01-02"),
			core.FormatMoney(inv.AmountCents, inv.Currency),
			c.statusBadge(inv.Status),
		)
		b.WriteString(s.Text.Render(line))
	}
	return b.String()
}

func (c *Component) statusBadge(status string) string {
	s := styles.CurrentTheme().S()
	switch status {
	case "paid":
		return s.Success.Render("paid")
	case "void":
		return s.Muted.Render("void")
	default:
		return s.Warning.Render(status)
	}
}

// total sums the ledger in its first currency. Mixed-currency histories fall
// back to a per-currency breakdown.
func (c *Component) total() string {
	if len(c.snap.Data) == 0 {
		return core.FormatMoney(0, "")
	}

	byCurrency := make(map[string]int64)
	var order []string
	for _, inv := range c.snap.Data {
		if inv.Status == "void" {
			continue
		}
		if _, seen := byCurrency[inv.Currency]; !seen {
			order = append(order, inv.Currency)
		}
		byCurrency[inv.Currency] += inv.AmountCents
	}
	if len(order) == 0 {
		return core.FormatMoney(0, "")
	}

	parts := make([]string, 0, len(order))
	for _, cur := range order {
		parts = append(parts, core.FormatMoney(byCurrency[cur], cur))
	}
	return strings.Join(parts, ", ")
}
