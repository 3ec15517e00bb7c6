package dialog

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/prefs"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/events"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// ColumnsDialog toggles which columns the case list shows. Every change is
// persisted immediately through the visibility preferences.
type ColumnsDialog struct {
	*BaseDialog

	eventBroker   *events.Broker
	vis           *prefs.Visibility
	selectedIndex int
}

// NewColumnsDialog creates a new columns dialog bound to one view's
// visibility preferences.
func NewColumnsDialog(eventBroker *events.Broker, vis *prefs.Visibility) *ColumnsDialog {
	return &ColumnsDialog{
		BaseDialog:  NewBaseDialog("Columns"),
		eventBroker: eventBroker,
		vis:         vis,
	}
}

// Init initializes the dialog
func (d *ColumnsDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *ColumnsDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !d.isOpen {
		return d, nil
	}

	items := d.vis.Items()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "c":
			return d, d.Close()
		case "up", "k":
			if d.selectedIndex > 0 {
				d.selectedIndex--
			}
		case "down", "j":
			if d.selectedIndex < len(items)-1 {
				d.selectedIndex++
			}
		case "enter", "space":
			if d.selectedIndex < len(items) {
				d.toggle(items[d.selectedIndex].ID)
			}
		case "r":
			if err := d.vis.Reset(); err != nil {
				d.reportError(err)
				return d, nil
			}
			d.publishChanged()
		}
	}

	return d, nil
}

func (d *ColumnsDialog) toggle(id string) {
	if err := d.vis.Toggle(id); err != nil {
		d.reportError(err)
		return
	}
	d.publishChanged()
}

func (d *ColumnsDialog) publishChanged() {
	if d.eventBroker != nil {
		d.eventBroker.PublishAsync(events.Event{
			Type: events.ColumnsChangedEvent,
		})
	}
}

func (d *ColumnsDialog) reportError(err error) {
	if d.eventBroker != nil {
		d.eventBroker.PublishAsync(events.Event{
			Type: events.ErrorMessageEvent,
			Payload: events.StatusMessagePayload{
				Message: err.Error(),
				Type:    "error",
			},
		})
	}
}

// View renders the dialog
func (d *ColumnsDialog) View() string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()

	var lines []string
	for i, item := range d.vis.Items() {
		marker := "  "
		if i == d.selectedIndex {
			marker = s.Info.Render("▶ ")
		}

		box := "[ ]"
		if d.vis.Visible(item.ID) {
			box = "[" + styles.CheckIcon + "]"
		}

		label := s.Text.Render(item.Label)
		if i == d.selectedIndex {
			label = s.Bold.Render(item.Label)
		}

		lines = append(lines, marker+box+" "+label)
	}

	lines = append(lines, "")
	lines = append(lines, s.Subtle.Render("space toggle · r reset · esc close"))

	return d.RenderDialog(strings.Join(lines, "\n"))
}
