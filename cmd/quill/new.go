package main

import (
	"context"
	"fmt"

	"github.com/aretw0/quill/pkg/core"
	"github.com/spf13/cobra"
)

var (
	newTitle   string
	newContent string
	newTags    []string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new note",
	Long:  `Create a note in the vault. An empty title gets the default placeholder.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, _, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		note, err := service.Create(context.Background(), core.Draft{
			Title:   newTitle,
			Content: newContent,
			Tags:    newTags,
		})
		if err != nil {
			fatal("Failed to create note", err)
		}

		fmt.Printf("Created note %s (%s)\n", note.ID, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Note title")
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Note content (markup)")
	newCmd.Flags().StringSliceVar(&newTags, "tag", nil, "Tag (repeatable)")
}
