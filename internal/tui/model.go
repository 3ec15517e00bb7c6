package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/api"
	"github.com/emerginginv/trace-aid-sub006/internal/app"
	"github.com/emerginginv/trace-aid-sub006/internal/badge"
	"github.com/emerginginv/trace-aid-sub006/internal/nav"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/billing"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/caseform"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/cases"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/dialog"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/guidepanel"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/header"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/status"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/events"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// Screen identifies a top-level view.
type Screen string

const (
	ScreenCases   Screen = "cases"
	ScreenEditor  Screen = "case"
	ScreenBilling Screen = "billing"
)

const appName = "Trace-Aid"

// Fixed layout rows.
const (
	headerHeight = 1
	statusHeight = 1
)

// openTimeout bounds the draft fetch when a case is opened.
const openTimeout = 10 * time.Second

// caseOpenedMsg delivers the fetched draft for a case being opened.
type caseOpenedMsg struct {
	c        api.Case
	draft    api.CaseDraft
	hasDraft bool
}

// caseOpenFailedMsg reports that the draft fetch failed.
type caseOpenFailedMsg struct {
	c   api.Case
	err error
}

// Model represents the component-based TUI model
type Model struct {
	width  int
	height int

	// Components
	header        *header.Component
	statusBar     *status.Component
	caseList      *cases.Component
	editor        *caseform.Component
	billing       *billing.Component
	guide         *guidepanel.Component
	dialogManager *dialog.Manager

	// Event system
	eventBroker *events.Broker
	eventSub    <-chan events.Event

	// App holds all business logic
	app *app.App

	// UI state only
	screen      Screen
	history     *nav.History
	titles      *badge.Composer
	pendingQuit bool
}

// New creates a new TUI model from an app instance and event broker
func New(appInstance *app.App, eventBroker *events.Broker) *Model {
	// Initialize theme manager with the configured theme
	styles.SetDefaultManager(styles.NewManager(appInstance.Config.Get().UI.Theme))

	m := &Model{
		header:        header.New(),
		statusBar:     status.New(),
		caseList:      cases.New(appInstance.Columns),
		editor:        caseform.New(),
		billing:       billing.New(),
		guide:         guidepanel.New(appInstance.Guidance, guidepanel.DefaultTips()),
		dialogManager: dialog.NewManager(eventBroker, appInstance.Columns),
		eventBroker:   eventBroker,
		app:           appInstance,
		screen:        ScreenCases,
		history:       nav.NewHistory(0),
		titles:        badge.NewComposer(appName),
	}

	m.history.Push(nav.Entry{Screen: string(ScreenCases), Title: "Cases"})
	m.header.SetCrumbs(m.history.Breadcrumbs(0))
	m.statusBar.SetAutosaveEnabled(appInstance.Config.Get().UI.Autosave)

	// Subscribe to all events
	m.eventSub = eventBroker.Subscribe()

	return m
}

// Init initializes the TUI model and all components
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	// Initialize all components
	cmds = append(cmds, m.header.Init())
	cmds = append(cmds, m.statusBar.Init())
	cmds = append(cmds, m.caseList.Init())
	cmds = append(cmds, m.editor.Init())
	cmds = append(cmds, m.billing.Init())
	cmds = append(cmds, m.guide.Init())
	cmds = append(cmds, m.dialogManager.Init())

	// Start event processing
	cmds = append(cmds, m.listenForEvents())

	cmds = append(cmds, tea.SetWindowTitle(m.titles.Title()))

	m.guide.Show(guidepanel.TipCases)
	m.syncResources()

	// Show welcome message
	m.eventBroker.PublishAsync(events.Event{
		Type: events.StatusMessageEvent,
		Payload: events.StatusMessagePayload{
			Message: "Welcome to Trace-Aid! Press ? for help",
			Type:    "info",
		},
	})

	return tea.Batch(cmds...)
}

// Update handles all TUI updates and routes to components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle events that come as messages
	if event, ok := msg.(events.Event); ok {
		model, cmd := m.handleEvent(event)
		// Continue listening for more events
		cmds = append(cmds, cmd, model.(*Model).listenForEvents())
		return model, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case cases.OpenMsg:
		return m, m.openCase(msg.Case)

	case caseOpenedMsg:
		return m, m.showEditor(msg)

	case caseOpenFailedMsg:
		return m, m.statusBar.ShowError(fmt.Sprintf("Failed to open case %s: %v", msg.c.Number, msg.err))
	}

	// If a dialog is open, route input to it first
	if m.dialogManager.IsDialogOpen() {
		dialogModel, cmd := m.dialogManager.Update(msg)
		if dm, ok := dialogModel.(*dialog.Manager); ok {
			m.dialogManager = dm
		}
		cmds = append(cmds, cmd)

		// Don't process key events further while a dialog is open
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Batch(cmds...)
		}
	}

	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		cmds = append(cmds, m.layoutComponents())
	}

	// Handle keyboard input - global keys come before component routing
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			// Open quit dialog instead of quitting immediately
			st, _ := m.app.DraftStatus()
			m.dialogManager.SetUnsaved(st.Dirty || st.Saving)
			return m, m.dialogManager.OpenDialog(dialog.QuitDialogType)

		case "ctrl+s":
			if m.screen == ScreenEditor {
				m.app.SaveDraftNow(m.editor.Draft())
				return m, nil
			}

		case "ctrl+g":
			if m.guide.Visible() {
				return m, m.dismissGuidance()
			}

		case "esc":
			if m.screen == ScreenEditor || m.screen == ScreenBilling {
				return m, m.goBack()
			}
		}

		// Single-letter shortcuts stay clear of text entry: the editor and
		// an active list filter own the keyboard.
		if m.screen != ScreenEditor && !m.caseList.Filtering() {
			switch keyMsg.String() {
			case "c":
				if m.screen == ScreenCases {
					return m, m.dialogManager.OpenDialog(dialog.ColumnsDialogType)
				}
			case "b":
				if m.screen != ScreenBilling {
					return m, m.showBilling()
				}
			case "o":
				m.dialogManager.SetSettings(m.currentSettings())
				return m, m.dialogManager.OpenDialog(dialog.SettingsDialogType)
			case "?":
				return m, m.dialogManager.OpenDialog(dialog.HelpDialogType)
			}
		}
	}

	// Route everything else to the active screen plus the status bar
	var cmd tea.Cmd
	switch m.screen {
	case ScreenEditor:
		var editorModel tea.Model
		editorModel, cmd = m.editor.Update(msg)
		if c, ok := editorModel.(*caseform.Component); ok {
			m.editor = c
		}
		cmds = append(cmds, cmd)

		// Every edit flows into the autosave coordinator
		if m.editor.Loaded() {
			m.app.ObserveDraft(m.editor.Draft())
		}

	case ScreenBilling:
		var billingModel tea.Model
		billingModel, cmd = m.billing.Update(msg)
		if c, ok := billingModel.(*billing.Component); ok {
			m.billing = c
		}
		cmds = append(cmds, cmd)

	default:
		var listModel tea.Model
		listModel, cmd = m.caseList.Update(msg)
		if c, ok := listModel.(*cases.Component); ok {
			m.caseList = c
		}
		cmds = append(cmds, cmd)
	}

	var statusModel tea.Model
	statusModel, cmd = m.statusBar.Update(msg)
	if sb, ok := statusModel.(*status.Component); ok {
		m.statusBar = sb
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the entire TUI
func (m *Model) View() tea.View {
	if m.width == 0 || m.height == 0 {
		return tea.NewView("Loading Trace-Aid...")
	}

	var screenView string
	switch m.screen {
	case ScreenEditor:
		screenView = m.editor.View()
	case ScreenBilling:
		screenView = m.billing.View()
	default:
		screenView = m.caseList.View()
	}

	sections := []string{m.header.View()}
	if m.guide.Visible() {
		sections = append(sections, m.guide.View())
	}
	sections = append(sections, screenView, m.statusBar.View())

	baseView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Overlay dialog if one is open
	if m.dialogManager.IsDialogOpen() {
		if dialogView := m.dialogManager.View(); dialogView != "" {
			return tea.NewView(dialogView)
		}
	}

	return tea.NewView(baseView)
}

// listenForEvents creates a command that waits for events
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		event := <-m.eventSub
		return event
	}
}

// Event handling

func (m *Model) handleEvent(event events.Event) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch event.Type {
	case events.SaveStateEvent:
		if payload, ok := event.Payload.(events.SaveStatePayload); ok {
			cmds = append(cmds, m.statusBar.SetSaveStatus(payload.Status))

			// The window title carries the unsaved marker, like a favicon
			// badge on a browser tab
			if m.titles.SetUnsaved(payload.Status.Dirty || payload.Status.Saving) {
				cmds = append(cmds, tea.SetWindowTitle(m.titles.Title()))
			}

			if m.pendingQuit {
				switch {
				case payload.Status.Err != nil:
					m.pendingQuit = false
					cmds = append(cmds, m.statusBar.ShowError("Save failed; staying open"))
				case !payload.Status.Saving && !payload.Status.Dirty:
					return m, tea.Quit
				}
			}
		}

	case events.ResourceUpdatedEvent:
		if payload, ok := event.Payload.(events.ResourcePayload); ok {
			m.syncResource(payload.Name)
			if payload.Name == "cases" {
				if m.titles.SetAttention(m.pendingCaseCount()) {
					cmds = append(cmds, tea.SetWindowTitle(m.titles.Title()))
				}
			}
		}

	case events.ColumnsChangedEvent:
		m.caseList.RefreshColumns()

	case events.StatusMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			switch payload.Type {
			case "warning":
				cmds = append(cmds, m.statusBar.ShowWarning(payload.Message))
			case "error":
				cmds = append(cmds, m.statusBar.ShowError(payload.Message))
			case "success":
				cmds = append(cmds, m.statusBar.ShowSuccess(payload.Message))
			default:
				cmds = append(cmds, m.statusBar.ShowInfo(payload.Message))
			}
		}

	case events.ErrorMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			cmds = append(cmds, m.statusBar.ShowError(payload.Message))
		}

	case events.DialogCloseEvent:
		if payload, ok := event.Payload.(events.DialogPayload); ok {
			// Handle settings dialog close
			if payload.DialogID == string(dialog.SettingsDialogType) {
				if settings, ok := payload.Data.(*dialog.Settings); ok && settings != nil {
					cmds = append(cmds, m.applySettings(settings))
				}
			}
		}

	case events.QuitRequestEvent:
		if payload, ok := event.Payload.(events.QuitPayload); ok && payload.SaveFirst {
			st, open := m.app.DraftStatus()
			if !open || (!st.Dirty && !st.Saving) {
				return m, tea.Quit
			}
			m.pendingQuit = true
			m.app.SaveDraftNow(m.editor.Draft())
		}

	case events.GuidanceDismissedEvent:
		// The panel reads dismissal state directly; just reclaim the rows
		cmds = append(cmds, m.layoutComponents())
	}

	return m, tea.Batch(cmds...)
}

// Navigation

// openCase fetches the stored draft before switching to the editor.
func (m *Model) openCase(c api.Case) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
		defer cancel()

		draft, hasDraft, err := m.app.LoadDraft(ctx, c.ID)
		if err != nil {
			return caseOpenFailedMsg{c: c, err: err}
		}
		return caseOpenedMsg{c: c, draft: draft, hasDraft: hasDraft}
	}
}

// showEditor switches to the case editor and starts the autosave
// coordinator for the opened case.
func (m *Model) showEditor(msg caseOpenedMsg) tea.Cmd {
	m.editor.SetCase(msg.c, msg.draft, msg.hasDraft)

	initial := msg.draft
	if !msg.hasDraft {
		initial = api.DraftFromCase(msg.c)
	}
	m.app.StartAutosave(initial)

	m.screen = ScreenEditor
	title := "Case " + msg.c.Number
	m.history.Push(nav.Entry{Screen: string(ScreenEditor), Title: title, Param: msg.c.ID})
	m.header.SetCrumbs(m.history.Breadcrumbs(0))
	m.titles.SetContext(title)
	m.titles.SetUnsaved(false)
	m.guide.Show(guidepanel.TipEditor)

	m.eventBroker.PublishAsync(events.Event{
		Type:    events.CaseOpenedEvent,
		Payload: events.CasePayload{CaseID: msg.c.ID, Title: title},
	})

	return tea.Batch(m.layoutComponents(), tea.SetWindowTitle(m.titles.Title()))
}

// showBilling switches to the billing ledger screen.
func (m *Model) showBilling() tea.Cmd {
	m.screen = ScreenBilling
	m.history.Push(nav.Entry{Screen: string(ScreenBilling), Title: "Billing"})
	m.header.SetCrumbs(m.history.Breadcrumbs(0))
	m.titles.SetContext("Billing")
	m.guide.Show(guidepanel.TipBilling)
	return tea.Batch(m.layoutComponents(), tea.SetWindowTitle(m.titles.Title()))
}

// goBack pops the navigation history. Leaving the editor keeps its
// coordinator running, so a pending save still lands after the switch.
func (m *Model) goBack() tea.Cmd {
	entry, ok := m.history.Back()
	if !ok {
		return nil
	}

	m.screen = Screen(entry.Screen)
	m.header.SetCrumbs(m.history.Breadcrumbs(0))

	switch m.screen {
	case ScreenEditor:
		m.titles.SetContext(entry.Title)
		m.guide.Show(guidepanel.TipEditor)
	case ScreenBilling:
		m.titles.SetContext("Billing")
		m.guide.Show(guidepanel.TipBilling)
	default:
		m.titles.SetContext("")
		m.guide.Show(guidepanel.TipCases)
	}

	return tea.Batch(m.layoutComponents(), tea.SetWindowTitle(m.titles.Title()))
}

// dismissGuidance persists the dismissal so the tip stays gone next run.
func (m *Model) dismissGuidance() tea.Cmd {
	tipID, err := m.guide.Dismiss()
	if err != nil {
		return m.statusBar.ShowError("Failed to save dismissal: " + err.Error())
	}

	m.eventBroker.PublishAsync(events.Event{
		Type:    events.GuidanceDismissedEvent,
		Payload: events.GuidancePayload{TipID: tipID},
	})

	return tea.Batch(m.layoutComponents(), m.statusBar.ShowInfo("Tip dismissed"))
}

// Settings

func (m *Model) currentSettings() *dialog.Settings {
	cfg := m.app.Config.Get()
	return &dialog.Settings{
		ServerURL:       cfg.Server.BaseURL,
		Theme:           cfg.UI.Theme,
		Autosave:        cfg.UI.Autosave,
		AutosaveDelayMS: cfg.UI.AutosaveDelayMS,
		PollIntervalS:   cfg.UI.PollIntervalS,
	}
}

// applySettings persists the dialog result. The autosave toggle takes
// effect immediately; delay and poll interval apply from the next case
// open and the next start.
func (m *Model) applySettings(s *dialog.Settings) tea.Cmd {
	sets := [][2]string{
		{"server.base_url", s.ServerURL},
		{"ui.theme", s.Theme},
		{"ui.autosave", strconv.FormatBool(s.Autosave)},
		{"ui.autosave_delay_ms", strconv.Itoa(s.AutosaveDelayMS)},
		{"ui.poll_interval_s", strconv.Itoa(s.PollIntervalS)},
	}
	for _, kv := range sets {
		if err := m.app.Config.Set(kv[0], kv[1]); err != nil {
			return m.statusBar.ShowError("Failed to save settings: " + err.Error())
		}
	}

	m.app.SetAutosaveEnabled(s.Autosave)
	m.statusBar.SetAutosaveEnabled(s.Autosave)

	if s.RestoreTips {
		if err := m.app.Guidance.Reset(); err != nil {
			return m.statusBar.ShowError("Failed to restore tips: " + err.Error())
		}
		m.guide.Show(m.screenTip())
		return m.layoutComponents()
	}
	return nil
}

// screenTip maps the active screen to its guidance tip.
func (m *Model) screenTip() string {
	switch m.screen {
	case ScreenEditor:
		return guidepanel.TipEditor
	case ScreenBilling:
		return guidepanel.TipBilling
	default:
		return guidepanel.TipCases
	}
}

// pendingCaseCount feeds the window-title counter, the way a web tab
// badge counts items waiting on the user.
func (m *Model) pendingCaseCount() int {
	snap := m.app.Cases.Snapshot()
	if !snap.Ready() {
		return 0
	}
	n := 0
	for _, c := range snap.Data {
		if c.Status == api.CaseStatusPending {
			n++
		}
	}
	return n
}

// Resource syncing

// syncResources pulls the current snapshot of every resource into its
// component.
func (m *Model) syncResources() {
	m.syncResource("cases")
	m.syncResource("billing")
	m.syncResource("identity")
}

func (m *Model) syncResource(name string) {
	switch name {
	case "cases":
		m.caseList.SetCases(m.app.Cases.Snapshot())
	case "billing":
		m.billing.SetInvoices(m.app.Billing.Snapshot())
	case "identity":
		snap := m.app.Identity.Snapshot()
		if !snap.Ready() || snap.Err != nil {
			return
		}
		who := snap.Data.User.Name
		if snap.Data.Org.Name != "" {
			who += " · " + snap.Data.Org.Name
		}
		m.header.SetIdentity(who)
		m.statusBar.SetContext(snap.Data.Org.Plan)
	}
}

// layoutComponents recomputes component sizes. The guidance panel takes
// rows from the active screen while visible.
func (m *Model) layoutComponents() tea.Cmd {
	if m.width == 0 || m.height == 0 {
		return nil
	}

	m.guide.SetWidth(m.width)
	guideHeight := 0
	if m.guide.Visible() {
		guideHeight = lipgloss.Height(m.guide.View())
	}

	contentHeight := m.height - headerHeight - statusHeight - guideHeight
	if contentHeight < 3 {
		contentHeight = 3
	}

	var cmds []tea.Cmd
	cmds = append(cmds, m.header.SetSize(m.width, headerHeight))
	cmds = append(cmds, m.statusBar.SetSize(m.width, statusHeight))
	cmds = append(cmds, m.caseList.SetSize(m.width, contentHeight))
	cmds = append(cmds, m.editor.SetSize(m.width, contentHeight))
	cmds = append(cmds, m.billing.SetSize(m.width, contentHeight))
	cmds = append(cmds, m.dialogManager.SetSize(m.width, m.height))
	return tea.Batch(cmds...)
}
