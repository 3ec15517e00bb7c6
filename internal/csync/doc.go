// Package csync provides small thread-safe containers used across the client.
//
// The UI goroutine, autosave timers and fetch loaders all touch shared state,
// so the package wraps the two shapes that keep coming up: a generic map and a
// single guarded value. Both are protected by mutexes and safe for concurrent
// use without additional synchronization.
//
// Example usage:
//
//	// Guarded single value (live handles, current status)
//	active := csync.NewValue(coordinator)
//	if prev := active.Swap(next); prev != nil {
//		prev.Stop()
//	}
//	current := active.Load()
//
//	// Thread-safe map (resource registries, per-view settings)
//	hidden := csync.NewMap[string, []string]()
//	hidden.Set("cases", []string{"opened_at"})
//	if cols, ok := hidden.Get("cases"); ok {
//		// Use cols safely
//	}
package csync
