package core

// Sort orders for note listings. Pinned notes always come first
// regardless of the order chosen.
const (
	SortUpdated = "updated"
	SortCreated = "created"
	SortTitle   = "title"
)

// Settings holds user preferences persisted alongside the collection.
// Zero values mean "use the default".
type Settings struct {
	Theme     string `json:"theme,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// ValidSortOrder reports whether order names a known sort order.
func ValidSortOrder(order string) bool {
	switch order {
	case SortUpdated, SortCreated, SortTitle:
		return true
	}
	return false
}
