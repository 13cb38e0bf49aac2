// Package typed provides a type-safe view over a single key of a raw
// byte store. The store speaks []byte; a Box speaks your struct.
package typed

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/quill/pkg/adapters/kv"
)

// Box binds a Go type to one store key, round-tripping it as JSON.
type Box[T any] struct {
	store kv.Store
	key   string
}

// NewBox creates a typed view of the given key.
func NewBox[T any](store kv.Store, key string) *Box[T] {
	return &Box[T]{store: store, key: key}
}

// Load reads and decodes the value. An absent key yields the zero value
// of T without error, so callers always start from a usable state.
func (b *Box[T]) Load() (T, error) {
	var value T

	data, found, err := b.store.Get(b.key)
	if err != nil {
		return value, fmt.Errorf("failed to read %q: %w", b.key, err)
	}
	if !found {
		return value, nil
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to decode %q: %w", b.key, err)
	}
	return value, nil
}

// Save encodes and persists the value under the bound key.
func (b *Box[T]) Save(value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", b.key, err)
	}
	if err := b.store.Set(b.key, data); err != nil {
		return fmt.Errorf("failed to write %q: %w", b.key, err)
	}
	return nil
}

// Clear removes the key, resetting Load to the zero value.
func (b *Box[T]) Clear() error {
	return b.store.Delete(b.key)
}
