// Package quill is the Composition Root for the quill note manager.
//
// It connects the core business logic (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// quill is a personal note vault. A vault is a directory holding the whole
// note collection as one serialized blob, written atomically on every
// mutation. Notes can be pinned, tagged, searched, and individually
// password-protected; an encrypted note never surfaces in search results.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Atomic Persistence**: The collection is rewritten wholesale via temp-file-and-rename.
//   - **Per-Note Confidentiality**: AES-GCM content protection keyed by a user password.
//   - **Reactive**: Watch the vault for external changes via fsnotify.
//   - **Extensible**: Custom stores and repositories via `kv.Store` / `core.Repository`.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := quill.New("./vault",
//		quill.WithAutoInit(true),
//		quill.WithLogger(logger),
//	)
//
//	// Create a note
//	note, err := svc.Create(ctx, core.Draft{Title: "Groceries", Content: "milk"})
package quill
