package core

import "context"

// Repository defines the contract for storing and querying the note collection.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism (single-file vault, in-memory, or anything else).
//
// The unit of consistency is the whole collection: implementations persist it
// wholesale on every mutating call, and a failed persist must leave the
// visible collection exactly as it was before the call.
type Repository interface {
	// All returns every note in the collection, in no particular order.
	All(ctx context.Context) ([]Note, error)

	// Get retrieves a note by its ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (Note, error)

	// Upsert replaces the note with the same ID, or appends it, then persists
	// the full collection.
	Upsert(ctx context.Context, n Note) error

	// Remove drops the note with the given ID and persists. Removing an
	// absent ID is not an error.
	Remove(ctx context.Context, id string) error

	// Pinned returns the notes whose pinned flag matches.
	Pinned(ctx context.Context, pinned bool) ([]Note, error)

	// Search returns notes matching the query (case-insensitive substring
	// against title, content and tags). Encrypted notes are excluded
	// unconditionally: ciphertext is never substring-matched, and even their
	// plaintext title and tags stay invisible to search.
	Search(ctx context.Context, query string) ([]Note, error)

	// Initialize ensures the underlying storage is ready and loads the
	// persisted collection. A missing or unreadable collection is not an
	// error; the repository starts empty.
	Initialize(ctx context.Context) error
}

// Cipher is the confidentiality engine contract: reversible content
// protection keyed by a caller-supplied password, plus one-way password
// verification.
type Cipher interface {
	// EncryptNote returns a copy with ciphertext content, Encrypted set and
	// PasswordHash issued. Encrypting an already-encrypted note is an error.
	EncryptNote(n Note, password string) (Note, error)

	// DecryptNote returns a copy with plaintext content. When the note is not
	// encrypted it is returned unchanged. The Encrypted flag on the returned
	// copy is left untouched; whether the decrypted state is persisted is the
	// caller's policy decision.
	DecryptNote(n Note, password string) (Note, error)

	// HashPassword returns a deterministic one-way digest of the password.
	HashPassword(password string) string

	// VerifyPassword reports whether the password matches the digest.
	VerifyPassword(password, hash string) bool
}

// Watchable defines an interface for repositories that can report external
// changes to the persisted collection.
type Watchable interface {
	// Watch emits an event per changed note. The pattern is a doublestar glob
	// matched against note IDs; "**" matches everything.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
