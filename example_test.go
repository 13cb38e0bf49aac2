package quill_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/adapters/kv"
	"github.com/aretw0/quill/pkg/core"
)

// Example demonstrates the basic lifecycle of a note: create, search, pin.
func Example() {
	// An in-memory store keeps the example self-contained; drop WithStore
	// to persist to a real vault directory instead.
	service, err := quill.New("example-vault", quill.WithStore(kv.NewMemoryStore()))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	note, err := service.Create(ctx, core.Draft{
		Title:   "Reading list",
		Content: "The Go Programming Language",
		Tags:    []string{"books"},
	})
	if err != nil {
		log.Fatal(err)
	}

	if _, err := service.TogglePin(ctx, note.ID); err != nil {
		log.Fatal(err)
	}

	results, err := service.Search(ctx, "go")
	if err != nil {
		log.Fatal(err)
	}
	for _, n := range results {
		fmt.Printf("%s (pinned=%v, tags=%v)\n", n.Title, n.Pinned, n.Tags)
	}

	// Output:
	// Reading list (pinned=true, tags=[books])
}

// Example_locking shows how a note is locked with a password and later
// read back, with and without persisting the plaintext.
func Example_locking() {
	service, err := quill.New("example-vault", quill.WithStore(kv.NewMemoryStore()))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	note, err := service.Create(ctx, core.Draft{Title: "Diary", Content: "dear diary"})
	if err != nil {
		log.Fatal(err)
	}

	locked, err := service.Encrypt(ctx, note.ID, "correct horse")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("locked:", locked.Encrypted)

	// Reveal decrypts for display only; the stored note stays locked.
	revealed, err := service.Reveal(ctx, note.ID, "correct horse")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("revealed:", revealed.Content)

	// Decrypt removes the lock and persists the plaintext.
	plain, err := service.Decrypt(ctx, note.ID, "correct horse")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("unlocked:", plain.Encrypted)

	// Output:
	// locked: true
	// revealed: dear diary
	// unlocked: false
}
