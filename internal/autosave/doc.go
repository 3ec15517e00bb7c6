// Package autosave debounces saves of continuously-edited values.
//
// # Overview
//
// The case editor hands every keystroke's resulting draft to a Coordinator.
// The Coordinator waits for a quiet period before invoking the save function,
// so a burst of edits turns into a single write to the backend. Only the most
// recent value is ever saved; superseded edits are coalesced, never queued.
//
// # State machine
//
// Each observation cycle walks:
//
//	IDLE --(value changes)--> DIRTY_PENDING --(delay elapses)--> SAVING --(success)--> IDLE
//	           ^                    |                               |
//	           |                    +--(new change, restart timer)  +--(failure)--> DIRTY_PENDING
//
// The cycle repeats until Stop tears the coordinator down.
//
// # Guarantees
//
//   - At most one pending timer exists at any instant ("cancel before
//     reschedule").
//   - Save attempts never overlap: a timer firing while a save is in flight
//     waits for it, so status updates are applied in order.
//   - Disabling or stopping the coordinator cancels the pending timer on
//     every exit path; after Stop the save function is never invoked again.
//   - Failures are logged and surfaced through Status; they are never
//     re-thrown into the caller and never retried automatically. The next
//     genuine value change (or SaveNow) starts a fresh attempt.
//
// # Example
//
//	c := autosave.New(draft, func(ctx context.Context, d CaseDraft) error {
//	    return client.SaveCaseDraft(ctx, d)
//	}, autosave.WithDelay(2*time.Second))
//	defer c.Stop()
//
//	// On every edit tick:
//	c.Observe(currentDraft)
//
//	// In the status bar:
//	st := c.Status() // {Saving, Dirty, LastSavedAt, Err}
package autosave
