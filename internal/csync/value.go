package csync

import "sync"

// Value is a mutex-guarded single value.
// Load returns a copy of whatever was stored last, so readers on the UI
// goroutine never observe a half-written update from a background goroutine.
type Value[T any] struct {
	data T
	mu   sync.RWMutex
}

// NewValue creates a guarded value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{data: initial}
}

// Load returns the current value.
func (v *Value[T]) Load() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.data
}

// Store replaces the current value.
func (v *Value[T]) Store(data T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data = data
}

// Swap stores data and returns the value it replaced.
func (v *Value[T]) Swap(data T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	old := v.data
	v.data = data
	return old
}

// Update applies fn to the current value and stores the result.
// fn runs under the write lock, so it must not call back into the Value.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data = fn(v.data)
	return v.data
}
