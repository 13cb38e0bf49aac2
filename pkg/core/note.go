package core

import "time"

// DefaultTitle is used when a note is created without a title.
const DefaultTitle = "Untitled Note"

// Note is the central entity of the domain.
// Content holds rich-text markup, or ciphertext when Encrypted is true.
// Encrypted is the single source of truth for which one it is; PasswordHash
// is set if and only if Encrypted is true.
type Note struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Pinned       bool      `json:"pinned"`
	Tags         []string  `json:"tags"`
	Encrypted    bool      `json:"encrypted"`
	PasswordHash string    `json:"passwordHash,omitempty"`
}

// Locked reports whether the note's content is currently ciphertext.
func (n Note) Locked() bool {
	return n.Encrypted
}

// Draft holds the caller-supplied fields for creating a note.
// Everything else (ID, timestamps, encryption state) is assigned by the Service.
type Draft struct {
	Title   string
	Content string
	Tags    []string
}

// Patch is the whitelist of fields a partial update may touch.
// Nil fields are left unchanged. ID, CreatedAt and the encryption state
// (Encrypted, PasswordHash) are deliberately not present: they can never be
// overwritten by a merge.
type Patch struct {
	Title   *string
	Content *string
	Tags    *[]string
	Pinned  *bool
}

// apply merges the patch into a copy of the note. The caller owns UpdatedAt.
func (p Patch) apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Pinned != nil {
		n.Pinned = *p.Pinned
	}
	return n
}

// EventType represents the type of change in the vault.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an externally observed change to the note collection.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}
