package autosave

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultDelay is the quiet period between the last observed change and the
// save attempt when no explicit delay is configured.
const DefaultDelay = 2 * time.Second

// SaveFunc persists a value. It is invoked from the coordinator's own
// goroutine, never concurrently with itself, and receives a context that is
// cancelled when the coordinator stops.
type SaveFunc[T any] func(ctx context.Context, value T) error

// Status is a point-in-time snapshot of the coordinator's save state.
type Status struct {
	// Saving is true while a save attempt is in flight.
	Saving bool

	// Dirty is true when the current value differs from the last value
	// known to be persisted. It stays true across failed attempts.
	Dirty bool

	// LastSavedAt is when the most recent save succeeded. Zero means no
	// save has succeeded yet in this coordinator's lifetime.
	LastSavedAt time.Time

	// Err is the failure from the most recent attempt, or nil. It is
	// cleared when a new attempt starts.
	Err error
}

// Coordinator debounces saves of a single edited value. Observe feeds it
// candidate values; after a configurable quiet period it persists the newest
// one via the save function. All methods are safe for concurrent use.
type Coordinator[T any] struct {
	delay    time.Duration
	save     SaveFunc[T]
	logger   *log.Logger
	onStatus func(Status)

	mu       sync.Mutex
	enabled  bool
	closed   bool
	snapshot T // last value initially supplied or successfully saved
	latest   T // newest observed value
	status   Status
	timer    *time.Timer
	gen      uint64 // bumped on every schedule/cancel; stale timers abort

	// saveMu serializes save execution. A timer that fires while an earlier
	// attempt is still running waits here instead of overlapping it.
	saveMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Coordinator.
type Option[T any] func(*Coordinator[T])

// WithDelay sets the debounce quiet period. Values <= 0 fall back to
// DefaultDelay.
func WithDelay[T any](d time.Duration) Option[T] {
	return func(c *Coordinator[T]) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger used to record save failures.
func WithLogger[T any](logger *log.Logger) Option[T] {
	return func(c *Coordinator[T]) {
		c.logger = logger
	}
}

// WithOnStatus registers a callback invoked after every visible status
// transition. The callback runs outside the coordinator's locks; it must not
// block for long and must not call back into the coordinator synchronously.
func WithOnStatus[T any](fn func(Status)) Option[T] {
	return func(c *Coordinator[T]) {
		c.onStatus = fn
	}
}

// WithEnabled sets the initial enabled state. A disabled coordinator ignores
// Observe calls until SetEnabled(true).
func WithEnabled[T any](enabled bool) Option[T] {
	return func(c *Coordinator[T]) {
		c.enabled = enabled
	}
}

// New builds a Coordinator seeded with initial as the baseline value.
// Observing a value equal to the baseline schedules nothing; the first save
// happens only after a genuine change.
func New[T any](initial T, save SaveFunc[T], opts ...Option[T]) *Coordinator[T] {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator[T]{
		delay:    DefaultDelay,
		save:     save,
		enabled:  true,
		snapshot: initial,
		latest:   initial,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe reports that the edited value may have changed. If it differs from
// the baseline snapshot the pending timer (if any) is cancelled and a new one
// is started, so the save fires delay after the last change. Equal values are
// ignored entirely, and a disabled coordinator ignores observations outright.
// Observe never blocks on persistence.
func (c *Coordinator[T]) Observe(value T) {
	c.mu.Lock()
	if c.closed || !c.enabled {
		c.mu.Unlock()
		return
	}
	if reflect.DeepEqual(value, c.snapshot) {
		c.mu.Unlock()
		return
	}

	c.latest = value
	becameDirty := !c.status.Dirty
	c.status.Dirty = true

	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.delay, func() { c.execute(gen) })

	st := c.status
	c.mu.Unlock()

	if becameDirty {
		c.notify(st)
	}
}

// SaveNow cancels any pending timer and starts a save attempt immediately,
// provided the coordinator is enabled and there are unsaved changes. It
// returns without waiting for the attempt to finish; completion is visible
// through Status and the status callback.
func (c *Coordinator[T]) SaveNow() {
	c.mu.Lock()
	if c.closed || !c.enabled || !c.status.Dirty {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	go c.execute(gen)
}

// SetEnabled toggles the coordinator. Disabling cancels the pending timer
// immediately, so nothing fires while disabled. Re-enabling schedules
// nothing by itself; the next Observe with a changed value starts the cycle
// again.
func (c *Coordinator[T]) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.enabled == enabled {
		return
	}
	c.enabled = enabled
	if !enabled {
		if c.timer != nil {
			c.timer.Stop()
			c.timer = nil
		}
		c.gen++
	}
}

// Stop tears the coordinator down: the pending timer is cancelled, the save
// context is cancelled, and every later call becomes a no-op. The save
// function is never invoked after Stop returns, though an attempt already in
// flight is left to finish with its context cancelled. Stop is idempotent.
func (c *Coordinator[T]) Stop() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.mu.Unlock()

	c.cancel()
}

// Status returns a copy of the current save state.
func (c *Coordinator[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Enabled reports whether the coordinator currently reacts to Observe.
func (c *Coordinator[T]) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && !c.closed
}

// execute runs one save attempt for the given timer generation. Stale
// generations (superseded, disabled, or stopped since scheduling) abort
// before touching anything. Disabling and stopping both bump the generation,
// so no separate flag check is needed here.
func (c *Coordinator[T]) execute(gen uint64) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	// Re-check under the state lock: while this attempt waited for an
	// earlier one, the coordinator may have been stopped, disabled, or
	// rescheduled with a newer value.
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	value := c.latest
	ctx := c.ctx
	c.status.Saving = true
	c.status.Err = nil
	st := c.status
	c.mu.Unlock()

	c.notify(st)

	err := c.runSave(ctx, value)

	c.mu.Lock()
	c.status.Saving = false
	if err != nil {
		c.status.Err = err
	} else {
		c.snapshot = value
		c.status.LastSavedAt = time.Now()
		c.status.Err = nil
		// Changes observed while the save was in flight keep the value
		// dirty; their timer is still pending and will fire normally.
		c.status.Dirty = !reflect.DeepEqual(c.latest, c.snapshot)
	}
	st = c.status
	c.mu.Unlock()

	if err != nil && c.logger != nil {
		c.logger.Error("autosave failed", "error", err)
	}
	c.notify(st)
}

// runSave invokes the save function, converting a panic into an ordinary
// error so a misbehaving callback cannot kill the timer goroutine.
func (c *Coordinator[T]) runSave(ctx context.Context, value T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("save failed: %v", r)
		}
	}()
	if saveErr := c.save(ctx, value); saveErr != nil {
		return fmt.Errorf("save failed: %w", saveErr)
	}
	return nil
}

func (c *Coordinator[T]) notify(st Status) {
	if c.onStatus != nil {
		c.onStatus(st)
	}
}
