package core_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/crypt"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable to test fallback/errors.
type MockRepository struct {
	notes map[string]core.Note
	order []string

	failNextSave bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{notes: make(map[string]core.Note)}
}

func (m *MockRepository) All(ctx context.Context) ([]core.Note, error) {
	var out []core.Note
	for _, id := range m.order {
		out = append(out, m.notes[id])
	}
	return out, nil
}

func (m *MockRepository) Get(ctx context.Context, id string) (core.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return core.Note{}, core.ErrNotFound
	}
	return n, nil
}

func (m *MockRepository) Upsert(ctx context.Context, n core.Note) error {
	if m.failNextSave {
		m.failNextSave = false
		return errors.New("save failed")
	}
	if _, ok := m.notes[n.ID]; !ok {
		m.order = append(m.order, n.ID)
	}
	m.notes[n.ID] = n
	return nil
}

func (m *MockRepository) Remove(ctx context.Context, id string) error {
	delete(m.notes, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockRepository) Pinned(ctx context.Context, pinned bool) ([]core.Note, error) {
	all, _ := m.All(ctx)
	var out []core.Note
	for _, n := range all {
		if n.Pinned == pinned {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *MockRepository) Search(ctx context.Context, query string) ([]core.Note, error) {
	all, _ := m.All(ctx)
	q := strings.ToLower(query)
	var out []core.Note
	for _, n := range all {
		if n.Encrypted {
			continue
		}
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

func newTestService() (*core.Service, *MockRepository) {
	repo := NewMockRepository()
	return core.NewService(repo, crypt.NewEngine()), repo
}

func TestService_Create(t *testing.T) {
	service, _ := newTestService()
	ctx := context.TODO()

	note, err := service.Create(ctx, core.Draft{Title: "A", Content: "hello", Tags: []string{"x"}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if note.ID == "" {
		t.Error("no ID assigned")
	}
	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Error("timestamps not assigned")
	}
	if !note.CreatedAt.Equal(note.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should match at creation")
	}
	if note.Encrypted || note.PasswordHash != "" {
		t.Error("new note must start unencrypted")
	}

	got, err := service.Get(ctx, note.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Content != "hello" {
		t.Errorf("want content %q, got %q", "hello", got.Content)
	}
}

func TestService_Create_DefaultTitle(t *testing.T) {
	service, _ := newTestService()

	note, err := service.Create(context.TODO(), core.Draft{Content: "no title"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if note.Title != core.DefaultTitle {
		t.Errorf("want default title %q, got %q", core.DefaultTitle, note.Title)
	}
}

func TestService_Update(t *testing.T) {
	service, _ := newTestService()
	ctx := context.TODO()

	note, _ := service.Create(ctx, core.Draft{Title: "A", Content: "v1"})
	created := note.CreatedAt

	content := "v2"
	updated, err := service.Update(ctx, note.ID, core.Patch{Content: &content})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Content != "v2" {
		t.Errorf("content not updated: %q", updated.Content)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Error("CreatedAt changed on update")
	}
	if updated.UpdatedAt.Before(created) {
		t.Error("UpdatedAt did not advance")
	}
	if updated.ID != note.ID {
		t.Error("ID changed on update")
	}
}

func TestService_Update_NotFound(t *testing.T) {
	service, _ := newTestService()

	title := "x"
	_, err := service.Update(context.TODO(), "missing", core.Patch{Title: &title})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete_Idempotent(t *testing.T) {
	service, repo := newTestService()
	ctx := context.TODO()

	note, _ := service.Create(ctx, core.Draft{Title: "A"})

	if err := service.Delete(ctx, note.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// Second delete of the same ID is a no-op, not an error.
	if err := service.Delete(ctx, note.ID); err != nil {
		t.Errorf("idempotent delete errored: %v", err)
	}
	if len(repo.notes) != 0 {
		t.Errorf("collection not empty after delete: %d", len(repo.notes))
	}
}

func TestService_TogglePin_SelfInverse(t *testing.T) {
	service, _ := newTestService()
	ctx := context.TODO()

	note, _ := service.Create(ctx, core.Draft{Title: "A"})

	once, err := service.TogglePin(ctx, note.ID)
	if err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}
	if !once.Pinned {
		t.Error("first toggle should pin")
	}

	twice, err := service.TogglePin(ctx, note.ID)
	if err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}
	if twice.Pinned != note.Pinned {
		t.Error("double toggle should restore the original pinned value")
	}
	if twice.UpdatedAt.Before(once.UpdatedAt) {
		t.Error("UpdatedAt did not advance on second toggle")
	}
}

func TestService_Search_EmptyQuery(t *testing.T) {
	service, _ := newTestService()
	ctx := context.TODO()

	_, _ = service.Create(ctx, core.Draft{Title: "A"})
	_, _ = service.Create(ctx, core.Draft{Title: "B"})

	for _, query := range []string{"", "   ", "\t\n"} {
		notes, err := service.Search(ctx, query)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(notes) != 2 {
			t.Errorf("empty query %q should return everything, got %d", query, len(notes))
		}
	}
}

func TestService_EncryptDecrypt(t *testing.T) {
	service, _ := newTestService()
	ctx := context.TODO()

	note, _ := service.Create(ctx, core.Draft{Title: "A", Content: "hello"})

	locked, err := service.Encrypt(ctx, note.ID, "pw1")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if !locked.Encrypted || locked.Content == "hello" || locked.PasswordHash == "" {
		t.Errorf("note not properly locked: %+v", locked)
	}

	// Persisted state matches.
	stored, _ := service.Get(ctx, note.ID)
	if !stored.Encrypted {
		t.Error("locked state was not persisted")
	}

	// Wrong password fails fast via the hash.
	if _, err := service.Decrypt(ctx, note.ID, "wrong"); !errors.Is(err, crypt.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}

	plain, err := service.Decrypt(ctx, note.ID, "pw1")
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if plain.Content != "hello" {
		t.Errorf("want %q, got %q", "hello", plain.Content)
	}
	if plain.Encrypted || plain.PasswordHash != "" {
		t.Error("Decrypt must clear the encrypted flag and hash together")
	}

	stored, _ = service.Get(ctx, note.ID)
	if stored.Encrypted || stored.Content != "hello" {
		t.Error("plaintext state was not persisted")
	}
}

func TestService_Encrypt_EmptyPassword(t *testing.T) {
	service, _ := newTestService()
	ctx := context.TODO()

	note, _ := service.Create(ctx, core.Draft{Content: "x"})

	_, err := service.Encrypt(ctx, note.ID, "")
	if !errors.Is(err, core.ErrEmptyPassword) {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestService_Reveal_DoesNotPersist(t *testing.T) {
	service, _ := newTestService()
	ctx := context.TODO()

	note, _ := service.Create(ctx, core.Draft{Content: "secret"})
	_, err := service.Encrypt(ctx, note.ID, "pw1")
	if err != nil {
		t.Fatal(err)
	}

	revealed, err := service.Reveal(ctx, note.ID, "pw1")
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if revealed.Content != "secret" {
		t.Errorf("want %q, got %q", "secret", revealed.Content)
	}

	stored, _ := service.Get(ctx, note.ID)
	if !stored.Encrypted || stored.Content == "secret" {
		t.Error("Reveal must not persist plaintext")
	}
}

func TestService_Update_LockedContent(t *testing.T) {
	service, _ := newTestService()
	ctx := context.TODO()

	note, _ := service.Create(ctx, core.Draft{Content: "secret"})
	if _, err := service.Encrypt(ctx, note.ID, "pw1"); err != nil {
		t.Fatal(err)
	}

	content := "overwrite"
	_, err := service.Update(ctx, note.ID, core.Patch{Content: &content})
	if !errors.Is(err, core.ErrNoteLocked) {
		t.Errorf("expected ErrNoteLocked, got %v", err)
	}

	// Title and pin changes stay allowed on a locked note.
	title := "renamed"
	if _, err := service.Update(ctx, note.ID, core.Patch{Title: &title}); err != nil {
		t.Errorf("title update on locked note failed: %v", err)
	}
}

func TestService_Watch_Unsupported(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Watch(context.TODO(), "**")
	if err == nil {
		t.Error("expected error for non-watchable repository")
	}
}
