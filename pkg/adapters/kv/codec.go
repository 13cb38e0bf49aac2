package kv

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/quill/pkg/core"
)

// SchemaVersion is the current on-disk envelope version.
const SchemaVersion = 1

// envelope is the persisted shape of the collection. Note field names must
// stay stable for compatibility with existing data.
type envelope struct {
	Version int         `json:"version"`
	Notes   []core.Note `json:"notes"`
}

// encodeNotes serializes the collection into the versioned envelope.
func encodeNotes(notes []core.Note) ([]byte, error) {
	env := envelope{Version: SchemaVersion, Notes: notes}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize notes: %w", err)
	}
	return data, nil
}

// EnsureCollection writes an empty versioned collection under NotesKey if
// none exists yet. The store file doubles as the vault root marker.
func EnsureCollection(store Store) error {
	_, ok, err := store.Get(NotesKey)
	if err != nil || ok {
		return err
	}
	data, err := encodeNotes(nil)
	if err != nil {
		return err
	}
	return store.Set(NotesKey, data)
}

// decodeNotes parses a persisted envelope. A payload from a newer schema
// version is treated as unreadable.
func decodeNotes(data []byte) ([]core.Note, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid notes payload: %w", err)
	}
	if env.Version > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", env.Version)
	}
	return env.Notes, nil
}
