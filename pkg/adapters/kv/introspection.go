package kv

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	StoreType     string `json:"store_type"`
	NoteCount     int    `json:"note_count"`
	ReadOnly      bool   `json:"read_only"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	storeType := "unknown"
	switch r.config.Store.(type) {
	case *FileStore:
		storeType = "file"
	case *MemoryStore:
		storeType = "memory"
	}

	return RepositoryState{
		StoreType:     storeType,
		NoteCount:     len(r.notes),
		ReadOnly:      r.config.ReadOnly,
		WatcherActive: r.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
