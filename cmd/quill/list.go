package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/quill/pkg/core"
	"github.com/spf13/cobra"
)

var (
	listJSON     bool
	listPinned   bool
	listUnpinned bool
	listTag      string
	listSort     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in the vault",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, _, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		ctx := context.Background()
		var notes []core.Note
		switch {
		case listPinned:
			notes, err = service.Pinned(ctx, true)
		case listUnpinned:
			notes, err = service.Pinned(ctx, false)
		default:
			notes, err = service.All(ctx)
		}
		if err != nil {
			fatal("Failed to list notes", err)
		}

		var filtered []core.Note
		for _, note := range notes {
			if listTag != "" && !hasTag(note, listTag) {
				continue
			}
			filtered = append(filtered, note)
		}

		sortNotes(filtered, listSortOrder())

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, note := range filtered {
			marker := " "
			if note.Pinned {
				marker = "*"
			}
			state := ""
			if note.Locked() {
				state = " [locked]"
			}
			fmt.Printf("%s %s  %s%s\n", marker, note.ID, note.Title, state)
		}
	},
}

// listSortOrder resolves the effective order: the --sort flag wins, then the
// persisted preference, then newest-updated-first.
func listSortOrder() string {
	if listSort != "" {
		return listSort
	}
	if box, err := openSettings(); err == nil {
		if settings, err := box.Load(); err == nil && settings.SortOrder != "" {
			return settings.SortOrder
		}
	}
	return core.SortUpdated
}

// sortNotes orders notes for display. Pinned notes always float to the top.
func sortNotes(notes []core.Note, order string) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		switch order {
		case core.SortCreated:
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		case core.SortTitle:
			return strings.ToLower(notes[i].Title) < strings.ToLower(notes[j].Title)
		default:
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		}
	})
}

func hasTag(n core.Note, tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listPinned, "pinned", false, "Only pinned notes")
	listCmd.Flags().BoolVar(&listUnpinned, "unpinned", false, "Only unpinned notes")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter notes by tag")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order: updated, created or title")
}
