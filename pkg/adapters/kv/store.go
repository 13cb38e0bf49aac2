// Package kv implements the default storage adapter: the note collection is
// persisted wholesale as a single serialized blob under a fixed logical key
// in a byte-level key/value store. The bundled stores are a plain-file store
// with atomic writes and an in-memory store for tests and embedding.
package kv

import "sync"

// NotesKey is the fixed logical key the note collection is persisted under.
const NotesKey = "notes"

// SettingsKey is the fixed logical key for vault settings.
const SettingsKey = "settings"

// Store is the byte-level persistence contract. Implementations must make
// Set atomic from the caller's point of view: a failed write leaves the
// previous value intact.
type Store interface {
	// Get returns the value for the key and whether it exists.
	Get(key string) ([]byte, bool, error)

	// Set overwrites the value for the key.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// MemoryStore is an in-memory Store. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte

	// FailWrites makes every Set return ErrWriteFailed. Used by tests to
	// exercise rollback behavior.
	FailWrites bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return ErrWriteFailed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

var _ Store = (*MemoryStore)(nil)
