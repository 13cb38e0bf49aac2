package kv

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/quill/pkg/core"
)

// Config holds the configuration for the key/value repository.
type Config struct {
	Store    Store
	Logger   *slog.Logger
	ReadOnly bool

	// ErrorHandler receives runtime watcher failures.
	ErrorHandler func(error)

	// EventBuffer is the capacity of Watch channels. Zero means default (100).
	EventBuffer int
}

// Repository implements core.Repository on top of a Store. The collection is
// held in memory and written through to the store wholesale on every
// mutation. A failed write rolls the in-memory state back to the last
// persisted collection, so visible and durable state never silently diverge.
type Repository struct {
	config Config

	mu            sync.RWMutex
	notes         map[string]core.Note
	order         []string // insertion order of IDs, for stable listing
	watcherActive bool
}

// NewRepository creates a new key/value-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{
		config: config,
		notes:  make(map[string]core.Note),
	}
}

// Initialize loads the persisted collection. Read or decode failures are
// absorbed: the system always has a valid "no notes yet" state, so the
// repository starts empty and logs what it skipped.
func (r *Repository) Initialize(ctx context.Context) error {
	notes := r.loadNotes()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = make(map[string]core.Note, len(notes))
	r.order = r.order[:0]
	for _, n := range notes {
		if _, dup := r.notes[n.ID]; !dup {
			r.order = append(r.order, n.ID)
		}
		r.notes[n.ID] = n
	}
	return nil
}

// loadNotes reads and decodes the persisted collection, soft-failing to nil.
func (r *Repository) loadNotes() []core.Note {
	data, ok, err := r.config.Store.Get(NotesKey)
	if err != nil {
		r.config.Logger.Warn("failed to read note collection, starting empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	notes, err := decodeNotes(data)
	if err != nil {
		r.config.Logger.Warn("failed to decode note collection, starting empty", "error", err)
		return nil
	}
	return notes
}

// snapshot returns the collection in insertion order. Callers must hold r.mu.
func (r *Repository) snapshot() []core.Note {
	out := make([]core.Note, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.notes[id])
	}
	return out
}

// persist writes the current collection through to the store.
// Callers must hold r.mu.
func (r *Repository) persist() error {
	data, err := encodeNotes(r.snapshot())
	if err != nil {
		return err
	}
	return r.config.Store.Set(NotesKey, data)
}

func (r *Repository) All(ctx context.Context) ([]core.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

func (r *Repository) Get(ctx context.Context, id string) (core.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notes[id]
	if !ok {
		return core.Note{}, core.ErrNotFound
	}
	return n, nil
}

func (r *Repository) Upsert(ctx context.Context, n core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, existed := r.notes[n.ID]
	if !existed {
		r.order = append(r.order, n.ID)
	}
	r.notes[n.ID] = n

	if err := r.persist(); err != nil {
		// Roll back: in-memory state must match what is actually on disk.
		if existed {
			r.notes[n.ID] = prev
		} else {
			delete(r.notes, n.ID)
			r.order = r.order[:len(r.order)-1]
		}
		return err
	}
	return nil
}

func (r *Repository) Remove(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, existed := r.notes[id]
	if !existed {
		return nil
	}

	pos := -1
	for i, oid := range r.order {
		if oid == id {
			pos = i
			break
		}
	}
	delete(r.notes, id)
	if pos >= 0 {
		r.order = append(r.order[:pos], r.order[pos+1:]...)
	}

	if err := r.persist(); err != nil {
		r.notes[id] = prev
		if pos >= 0 {
			r.order = append(r.order[:pos], append([]string{id}, r.order[pos:]...)...)
		}
		return err
	}
	return nil
}

func (r *Repository) Pinned(ctx context.Context, pinned bool) ([]core.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.Note
	for _, n := range r.snapshot() {
		if n.Pinned == pinned {
			out = append(out, n)
		}
	}
	return out, nil
}

// Search matches the query case-insensitively against title, content and
// tags. Encrypted notes never appear in results, whatever their title or
// tags contain: an encrypted note is fully opaque to search. That is a
// confidentiality guarantee, not an optimization.
func (r *Repository) Search(ctx context.Context, query string) ([]core.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var out []core.Note
	for _, n := range r.snapshot() {
		if n.Encrypted {
			continue
		}
		if matchesQuery(n, q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func matchesQuery(n core.Note, lowered string) bool {
	if strings.Contains(strings.ToLower(n.Title), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), lowered) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}

var _ core.Repository = (*Repository)(nil)
