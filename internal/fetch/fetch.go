// Package fetch wraps async backend reads in a polling-friendly resource.
// Each Resource owns one remote value: it loads in the background, keeps the
// last good data visible while reloading, and drops responses that were
// superseded by a newer refresh.
package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// LoadFunc produces the resource's value. It runs on a background goroutine
// with a context that is cancelled when the resource closes.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is the observable state of a Resource at one instant.
type Snapshot[T any] struct {
	// Data is the most recently loaded value. It stays visible while a
	// reload is in flight and across failed reloads.
	Data T

	// Loading is true from Refresh until the load completes.
	Loading bool

	// Err is the most recent load failure, cleared by the next success.
	Err error

	// LoadedAt is when Data was last successfully loaded. Zero means no
	// load has succeeded yet.
	LoadedAt time.Time
}

// Ready reports whether the snapshot carries usable data.
func (s Snapshot[T]) Ready() bool {
	return !s.LoadedAt.IsZero()
}

// Resource manages one background-loaded value. All methods are safe for
// concurrent use.
type Resource[T any] struct {
	name     string
	load     LoadFunc[T]
	logger   *log.Logger
	onChange func(Snapshot[T])

	mu     sync.Mutex
	snap   Snapshot[T]
	gen    uint64 // bumped per refresh; stale completions are dropped
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Resource.
type Option[T any] func(*Resource[T])

// WithLogger sets the logger used to record load failures.
func WithLogger[T any](logger *log.Logger) Option[T] {
	return func(r *Resource[T]) { r.logger = logger }
}

// WithOnChange registers a callback invoked after every snapshot change,
// outside the resource's lock. The TUI uses this to push refresh events into
// its update loop.
func WithOnChange[T any](fn func(Snapshot[T])) Option[T] {
	return func(r *Resource[T]) { r.onChange = fn }
}

// NewResource creates a resource around the load function. Nothing is
// loaded until the first Refresh.
func NewResource[T any](name string, load LoadFunc[T], opts ...Option[T]) *Resource[T] {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Resource[T]{
		name:   name,
		load:   load,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh starts a background load. A refresh issued while another is in
// flight supersedes it: the older result is discarded whenever it arrives.
func (r *Resource[T]) Refresh() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.gen++
	gen := r.gen
	r.snap.Loading = true
	snap := r.snap
	ctx := r.ctx
	r.mu.Unlock()

	r.notify(snap)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		data, err := r.runLoad(ctx)

		r.mu.Lock()
		if r.closed || gen != r.gen {
			r.mu.Unlock()
			return
		}
		r.snap.Loading = false
		if err != nil {
			r.snap.Err = err
		} else {
			r.snap.Data = data
			r.snap.Err = nil
			r.snap.LoadedAt = time.Now()
		}
		snap := r.snap
		r.mu.Unlock()

		if err != nil && r.logger != nil {
			r.logger.Error("resource load failed", "resource", r.name, "error", err)
		}
		r.notify(snap)
	}()
}

// Poll refreshes immediately and then on every interval tick until the
// resource closes.
func (r *Resource[T]) Poll(interval time.Duration) {
	r.Refresh()
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				r.Refresh()
			}
		}
	}()
}

// Snapshot returns a copy of the current state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Name returns the resource's identifier, used in events and logs.
func (r *Resource[T]) Name() string {
	return r.name
}

// Close cancels the load context and stops polling. In-flight results are
// discarded. Close blocks until background goroutines exit and is
// idempotent.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.gen++
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

// runLoad invokes the load function, converting a panic into an error.
func (r *Resource[T]) runLoad(ctx context.Context) (data T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("load failed: %v", rec)
		}
	}()
	return r.load(ctx)
}

func (r *Resource[T]) notify(snap Snapshot[T]) {
	if r.onChange != nil {
		r.onChange(snap)
	}
}
