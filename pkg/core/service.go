package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles the business logic for notes. It is the only component that
// applies cross-cutting invariants: ID and timestamp assignment, the
// whitelist merge for partial updates, and the coupling between content,
// the encrypted flag and the password hash.
type Service struct {
	repo   Repository
	cipher Cipher
	now    func() time.Time
	newID  func() string
}

// NewService creates a new Service.
func NewService(repo Repository, cipher Cipher) *Service {
	return &Service{
		repo:   repo,
		cipher: cipher,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Create assembles a new note from the draft, assigns ID and timestamps,
// applies defaults and persists it.
func (s *Service) Create(ctx context.Context, d Draft) (Note, error) {
	title := d.Title
	if title == "" {
		title = DefaultTitle
	}

	now := s.now()
	n := Note{
		ID:        s.newID(),
		Title:     title,
		Content:   d.Content,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      append([]string(nil), d.Tags...),
	}

	if err := s.repo.Upsert(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// Update applies a partial update to an existing note and refreshes
// UpdatedAt. Returns ErrNotFound when the ID is absent, and ErrNoteLocked
// when a content edit targets an encrypted note.
func (s *Service) Update(ctx context.Context, id string, p Patch) (Note, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}

	if p.Content != nil && n.Locked() {
		return Note{}, ErrNoteLocked
	}

	n = p.apply(n)
	n.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// Delete removes a note. Deleting an absent ID is a no-op, not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Remove(ctx, id)
}

// Get retrieves a single note by ID.
func (s *Service) Get(ctx context.Context, id string) (Note, error) {
	return s.repo.Get(ctx, id)
}

// All returns the full collection.
func (s *Service) All(ctx context.Context) ([]Note, error) {
	return s.repo.All(ctx)
}

// Pinned returns notes filtered by their pinned flag.
func (s *Service) Pinned(ctx context.Context, pinned bool) ([]Note, error) {
	return s.repo.Pinned(ctx, pinned)
}

// TogglePin flips the pinned flag of a note.
func (s *Service) TogglePin(ctx context.Context, id string) (Note, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	pinned := !n.Pinned
	return s.Update(ctx, id, Patch{Pinned: &pinned})
}

// Search returns notes matching the query. An empty or whitespace-only query
// returns the full collection.
func (s *Service) Search(ctx context.Context, query string) ([]Note, error) {
	if strings.TrimSpace(query) == "" {
		return s.repo.All(ctx)
	}
	return s.repo.Search(ctx, query)
}

// Encrypt protects a note's content with the given password. Content,
// encrypted flag and password hash are persisted together as one update.
// The empty-password rejection lives here, not in the engine.
func (s *Service) Encrypt(ctx context.Context, id, password string) (Note, error) {
	if password == "" {
		return Note{}, ErrEmptyPassword
	}

	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}

	locked, err := s.cipher.EncryptNote(n, password)
	if err != nil {
		return Note{}, err
	}
	locked.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, locked); err != nil {
		return Note{}, err
	}
	return locked, nil
}

// Decrypt removes protection from a note and persists it as plaintext:
// content decrypted, encrypted flag cleared and password hash dropped in a
// single update. For a read-only view that leaves the persisted note
// untouched, use Reveal.
func (s *Service) Decrypt(ctx context.Context, id, password string) (Note, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if !n.Locked() {
		return n, nil
	}

	plain, err := s.cipher.DecryptNote(n, password)
	if err != nil {
		return Note{}, err
	}
	plain.Encrypted = false
	plain.PasswordHash = ""
	plain.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, plain); err != nil {
		return Note{}, err
	}
	return plain, nil
}

// Reveal returns a decrypted copy of a note without persisting anything.
// The stored note keeps its ciphertext and encrypted flag.
func (s *Service) Reveal(ctx context.Context, id, password string) (Note, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	return s.cipher.DecryptNote(n, password)
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}
