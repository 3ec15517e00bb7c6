// Package cases renders the case list screen. Rows come from the cases
// fetch resource; which detail segments each row shows is controlled by the
// persisted column preferences.
package cases

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/api"
	"github.com/emerginginv/trace-aid-sub006/internal/fetch"
	"github.com/emerginginv/trace-aid-sub006/internal/prefs"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/core"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// Column IDs managed through the columns dialog.
const (
	ColumnStatus   = "status"
	ColumnAssignee = "assignee"
	ColumnBilled   = "billed"
	ColumnUpdated  = "updated"
)

// DefaultColumns is the toggleable column set for this view.
func DefaultColumns() []prefs.Item {
	return []prefs.Item{
		{ID: ColumnStatus, Label: "Status", Default: true},
		{ID: ColumnAssignee, Label: "Assignee", Default: false},
		{ID: ColumnBilled, Label: "Billed", Default: true},
		{ID: ColumnUpdated, Label: "Updated", Default: true},
	}
}

// OpenMsg asks the root model to open the selected case in the editor.
type OpenMsg struct {
	Case api.Case
}

// Component is the case list screen.
type Component struct {
	width  int
	height int

	list list.Model
	vis  *prefs.Visibility
	snap fetch.Snapshot[[]api.Case]
}

var _ core.Component = (*Component)(nil)
var _ core.Sizeable = (*Component)(nil)

// New creates the case list. vis holds the column visibility for this view.
func New(vis *prefs.Visibility) *Component {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Cases"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return &Component{
		list: l,
		vis:  vis,
	}
}

// Init implements the Component interface
func (c *Component) Init() tea.Cmd {
	return nil
}

// Update implements the Component interface
func (c *Component) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		// While a filter is being typed, enter belongs to the list.
		if c.list.FilterState() != list.Filtering {
			if item, ok := c.list.SelectedItem().(caseItem); ok {
				return c, func() tea.Msg {
					return OpenMsg{Case: item.c}
				}
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.list, cmd = c.list.Update(msg)
	return c, cmd
}

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	c.height = height
	c.list.SetWidth(width)
	c.list.SetHeight(height - 1) // keep a row for the resource status line
	return nil
}

// SetCases replaces the rows from a fresh resource snapshot. Selection is
// kept on the same case when it still exists.
func (c *Component) SetCases(snap fetch.Snapshot[[]api.Case]) {
	c.snap = snap

	selectedID := ""
	if item, ok := c.list.SelectedItem().(caseItem); ok {
		selectedID = item.c.ID
	}

	c.list.SetItems(c.buildItems())

	if selectedID != "" {
		for i, it := range c.list.Items() {
			if item, ok := it.(caseItem); ok && item.c.ID == selectedID {
				c.list.Select(i)
				break
			}
		}
	}
}

// RefreshColumns rebuilds the rows after a column visibility change.
func (c *Component) RefreshColumns() {
	c.list.SetItems(c.buildItems())
}

// Selected returns the highlighted case, if any.
func (c *Component) Selected() (api.Case, bool) {
	if item, ok := c.list.SelectedItem().(caseItem); ok {
		return item.c, true
	}
	return api.Case{}, false
}

// Filtering reports whether the list filter is capturing keystrokes.
func (c *Component) Filtering() bool {
	return c.list.FilterState() == list.Filtering
}

// View implements the Component interface
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, c.statusLine(), c.list.View())
}

func (c *Component) statusLine() string {
	s := styles.CurrentTheme().S()

	switch {
	case c.snap.Err != nil && len(c.snap.Data) > 0:
		return s.Warning.Render("⚠ refresh failed, showing cached cases")
	case c.snap.Err != nil:
		return s.Error.Render("✗ " + c.snap.Err.Error())
	case c.snap.Loading && len(c.snap.Data) == 0:
		return s.Muted.Render("Loading cases...")
	case c.snap.Loading:
		return s.Muted.Render("refreshing...")
	case len(c.snap.Data) == 0 && c.snap.Ready():
		return s.Muted.Render("No cases assigned to you.")
	default:
		return s.Subtle.Render(fmt.Sprintf("%d cases", len(c.snap.Data)))
	}
}

func (c *Component) buildItems() []list.Item {
	cols := make(map[string]bool)
	if c.vis != nil {
		for _, id := range c.vis.VisibleIDs() {
			cols[id] = true
		}
	}

	now := time.Now()
	items := make([]list.Item, 0, len(c.snap.Data))
	for _, cs := range c.snap.Data {
		items = append(items, caseItem{c: cs, cols: cols, now: now})
	}
	return items
}

// caseItem implements list.Item.
type caseItem struct {
	c    api.Case
	cols map[string]bool
	now  time.Time
}

func (i caseItem) Title() string {
	return fmt.Sprintf("%s  %s", i.c.Number, i.c.Subject)
}

func (i caseItem) Description() string {
	var segs []string
	if i.cols[ColumnStatus] {
		segs = append(segs, statusIcon(i.c.Status)+" "+i.c.Status)
	}
	if i.cols[ColumnAssignee] && i.c.AssignedTo != "" {
		segs = append(segs, i.c.AssignedTo)
	}
	if i.cols[ColumnBilled] {
		segs = append(segs, core.FormatMoney(i.c.BilledCents, i.c.Currency))
	}
	if i.cols[ColumnUpdated] {
		segs = append(segs, "updated "+core.FormatRelative(i.c.UpdatedAt, i.now))
	}
	if len(segs) == 0 {
		return " "
	}
	return strings.Join(segs, " · ")
}

func (i caseItem) FilterValue() string {
	return i.c.Number + " " + i.c.Subject
}

func statusIcon(status string) string {
	switch status {
	case api.CaseStatusPending:
		return styles.PendingCaseIcon
	case api.CaseStatusClosed:
		return styles.ClosedCaseIcon
	case api.CaseStatusArchived:
		return styles.ArchivedCaseIcon
	default:
		return styles.OpenCaseIcon
	}
}
