package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned when no note matches the requested ID.
	ErrNotFound = errors.New("note not found")

	// ErrNoteLocked is returned when a content edit targets an encrypted note.
	// Plaintext must never silently replace ciphertext; callers decrypt first.
	ErrNoteLocked = errors.New("note is encrypted")

	// ErrEmptyPassword is returned by the Service when a protection operation
	// is attempted with an empty password. This is policy, not an engine
	// limitation: the engine itself accepts any password.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrReadOnly is returned when a write operation hits a read-only repository.
	ErrReadOnly = errors.New("repository is in read-only mode")
)
