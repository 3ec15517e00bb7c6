package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Store is the key-value capability handed to the preference and guidance
// trackers. It mirrors what the web client gets from browser local storage,
// except the dependency is explicit: whoever constructs a tracker decides
// where its state lives.
type Store interface {
	// Get returns the stored bytes for key and whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Keys returns all stored keys that start with prefix.
	Keys(prefix string) ([]string, error)
}

// ErrClosed is returned by stores that have been shut down.
var ErrClosed = errors.New("storage: store is closed")

// GetJSON reads key and unmarshals it into out.
// A missing key returns (false, nil) and leaves out untouched; a corrupt
// entry is treated the same way so a bad write never wedges the client.
func GetJSON(s Store, key string, out any) (bool, error) {
	data, ok, err := s.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Corrupt entry - behave as if it was never written
		return false, nil
	}
	return true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	if err := s.Set(key, data); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
