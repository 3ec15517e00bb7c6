// Package app wires the services behind the TUI: configuration, on-disk
// state, the backend API client, the autosave coordinator, and the
// background fetch resources. The TUI talks to these services and renders
// whatever they report; it owns no business state of its own.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/emerginginv/trace-aid-sub006/internal/api"
	"github.com/emerginginv/trace-aid-sub006/internal/autosave"
	"github.com/emerginginv/trace-aid-sub006/internal/config"
	"github.com/emerginginv/trace-aid-sub006/internal/csync"
	"github.com/emerginginv/trace-aid-sub006/internal/fetch"
	"github.com/emerginginv/trace-aid-sub006/internal/guidance"
	"github.com/emerginginv/trace-aid-sub006/internal/prefs"
	"github.com/emerginginv/trace-aid-sub006/internal/storage"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/components/cases"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/events"
)

// Storage keys for persisted UI state.
const (
	columnsKey  = "columns:cases"
	guidanceKey = "guidance:dismissed"
)

// Identity is who is signed in and for which tenant.
type Identity struct {
	User api.User
	Org  api.Organization
}

// App holds all the core services and business logic
type App struct {
	Config *config.Manager
	Logger *log.Logger
	Store  *storage.FileStore
	Client api.Client

	// Persisted UI preferences
	Columns  *prefs.Visibility
	Guidance *guidance.Tracker

	// Background-loaded backend data
	Cases    *fetch.Resource[[]api.Case]
	Billing  *fetch.Resource[[]api.Invoice]
	Identity *fetch.Resource[Identity]

	// Event system
	EventBroker *events.Broker

	// Coordinator for the open case's draft, nil when no case is open.
	draft csync.Value[*autosave.Coordinator[api.CaseDraft]]
}

// New creates the app with all services initialized. The configuration must
// already be loaded.
func New(cfg *config.Manager, logger *log.Logger, eventBroker *events.Broker) (*App, error) {
	store, err := storage.NewFileStore(cfg.StateDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open state dir: %w", err)
	}

	columns, err := prefs.NewVisibility(store, columnsKey, cases.DefaultColumns())
	if err != nil {
		return nil, err
	}

	tracker, err := guidance.NewTracker(store, guidanceKey)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:      cfg,
		Logger:      logger,
		Store:       store,
		Client:      api.NewHTTPClient(cfg.Get().Server.BaseURL, cfg.Get().Server.Token),
		Columns:     columns,
		Guidance:    tracker,
		EventBroker: eventBroker,
	}

	a.Cases = fetch.NewResource("cases", a.loadCases,
		fetch.WithLogger[[]api.Case](logger),
		fetch.WithOnChange[[]api.Case](func(fetch.Snapshot[[]api.Case]) {
			a.publishResourceUpdated("cases")
		}),
	)
	a.Billing = fetch.NewResource("billing", a.loadBilling,
		fetch.WithLogger[[]api.Invoice](logger),
		fetch.WithOnChange[[]api.Invoice](func(fetch.Snapshot[[]api.Invoice]) {
			a.publishResourceUpdated("billing")
		}),
	)
	a.Identity = fetch.NewResource("identity", a.loadIdentity,
		fetch.WithLogger[Identity](logger),
		fetch.WithOnChange[Identity](func(fetch.Snapshot[Identity]) {
			a.publishResourceUpdated("identity")
		}),
	)

	return a, nil
}

// Start kicks off the background loads. Cases and billing poll on the
// configured interval; the identity is fetched once.
func (a *App) Start() {
	interval := a.Config.Get().PollInterval()
	a.Cases.Poll(interval)
	a.Billing.Poll(interval)
	a.Identity.Refresh()
}

// Close shuts down the draft coordinator, the pollers, and the state store.
func (a *App) Close() {
	a.StopAutosave()
	a.Cases.Close()
	a.Billing.Close()
	a.Identity.Close()
	if err := a.Store.Close(); err != nil {
		a.Logger.Error("failed to close state store", "error", err)
	}
}

// LoadDraft fetches the stored draft for a case, reporting whether one
// exists.
func (a *App) LoadDraft(ctx context.Context, caseID string) (api.CaseDraft, bool, error) {
	return a.Client.GetCaseDraft(ctx, caseID)
}

// StartAutosave replaces the draft coordinator for a newly opened case. The
// previous coordinator, if any, is stopped and any pending save it had
// scheduled is dropped.
func (a *App) StartAutosave(initial api.CaseDraft) {
	cfg := a.Config.Get()
	caseID := initial.CaseID

	coord := autosave.New(initial, a.saveDraft,
		autosave.WithDelay[api.CaseDraft](cfg.AutosaveDelay()),
		autosave.WithLogger[api.CaseDraft](a.Logger),
		autosave.WithEnabled[api.CaseDraft](cfg.UI.Autosave),
		autosave.WithOnStatus[api.CaseDraft](func(st autosave.Status) {
			a.EventBroker.Publish(events.Event{
				Type: events.SaveStateEvent,
				Payload: events.SaveStatePayload{
					CaseID: caseID,
					Status: st,
				},
			})
		}),
	)

	if prev := a.draft.Swap(coord); prev != nil {
		prev.Stop()
	}
}

// StopAutosave stops the draft coordinator. Pending changes are dropped.
func (a *App) StopAutosave() {
	if prev := a.draft.Swap(nil); prev != nil {
		prev.Stop()
	}
}

// ObserveDraft feeds the editor's current draft to the coordinator. A no-op
// when no case is open.
func (a *App) ObserveDraft(draft api.CaseDraft) {
	if c := a.coordinator(); c != nil {
		c.Observe(draft)
	}
}

// SaveDraftNow persists the draft immediately, skipping the debounce delay.
// With autosave on, the coordinator flushes whatever it has observed. With
// autosave off the coordinator has observed nothing, so the given draft is
// written directly and becomes the fresh coordinator baseline.
func (a *App) SaveDraftNow(draft api.CaseDraft) {
	c := a.coordinator()
	if c == nil {
		return
	}
	if c.Enabled() {
		c.Observe(draft)
		c.SaveNow()
		return
	}
	go a.saveDraftDirect(draft)
}

// directSaveTimeout bounds a manual save that runs outside the coordinator.
const directSaveTimeout = 15 * time.Second

// saveDraftDirect writes the draft outside the coordinator, reporting
// progress through the same save state events, then reseeds the coordinator
// so later comparisons run against the saved value.
func (a *App) saveDraftDirect(draft api.CaseDraft) {
	publish := func(st autosave.Status) {
		a.EventBroker.Publish(events.Event{
			Type:    events.SaveStateEvent,
			Payload: events.SaveStatePayload{CaseID: draft.CaseID, Status: st},
		})
	}

	publish(autosave.Status{Saving: true, Dirty: true})

	ctx, cancel := context.WithTimeout(context.Background(), directSaveTimeout)
	defer cancel()
	if err := a.saveDraft(ctx, draft); err != nil {
		a.Logger.Error("manual save failed", "case", draft.CaseID, "error", err)
		publish(autosave.Status{Dirty: true, Err: fmt.Errorf("save failed: %w", err)})
		return
	}

	// Reseed only while the case is still open; the save may have raced a
	// close.
	if a.coordinator() != nil {
		a.StartAutosave(draft)
	}
	publish(autosave.Status{LastSavedAt: time.Now()})
}

// DraftStatus returns the coordinator's save status. ok is false when no
// case is open.
func (a *App) DraftStatus() (autosave.Status, bool) {
	if c := a.coordinator(); c != nil {
		return c.Status(), true
	}
	return autosave.Status{}, false
}

// SetAutosaveEnabled turns debounced saving on or off for the open case.
func (a *App) SetAutosaveEnabled(enabled bool) {
	if c := a.coordinator(); c != nil {
		c.SetEnabled(enabled)
	}
}

func (a *App) coordinator() *autosave.Coordinator[api.CaseDraft] {
	return a.draft.Load()
}

func (a *App) saveDraft(ctx context.Context, draft api.CaseDraft) error {
	return a.Client.SaveCaseDraft(ctx, draft)
}

func (a *App) loadCases(ctx context.Context) ([]api.Case, error) {
	return a.Client.ListCases(ctx)
}

func (a *App) loadBilling(ctx context.Context) ([]api.Invoice, error) {
	return a.Client.BillingHistory(ctx)
}

func (a *App) loadIdentity(ctx context.Context) (Identity, error) {
	user, err := a.Client.CurrentUser(ctx)
	if err != nil {
		return Identity{}, err
	}
	org, err := a.Client.Organization(ctx)
	if err != nil {
		return Identity{}, err
	}
	return Identity{User: user, Org: org}, nil
}

func (a *App) publishResourceUpdated(name string) {
	a.EventBroker.Publish(events.Event{
		Type:    events.ResourceUpdatedEvent,
		Payload: events.ResourcePayload{Name: name},
	})
}
