package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps each key in its own file under a root directory.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a half-written entry behind. Missing or unreadable entries read as absent.
type FileStore struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{root: dir}, nil
}

// Get returns the stored bytes for key.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrClosed
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		// Missing or unreadable - treat as absent
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores value under key.
func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	target := s.path(key)

	// Write atomically (write to temp file, then rename)
	tempFile := target + ".tmp"
	if err := os.WriteFile(tempFile, value, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, target); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Remove deletes key's file if present.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys with the given prefix.
func (s *FileStore) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		key := unsanitize(strings.TrimSuffix(name, ".json"))
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Close marks the store closed. Later calls return ErrClosed.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.root, sanitize(key)+".json")
}

// Keys use ":" as a namespace separator ("visibility:cases"). Colons and
// path separators are not safe in file names, so they map to "__".
func sanitize(key string) string {
	replacer := strings.NewReplacer(":", "__", "/", "__", "\\", "__")
	return replacer.Replace(key)
}

func unsanitize(name string) string {
	return strings.ReplaceAll(name, "__", ":")
}
