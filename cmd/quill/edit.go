package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/quill/pkg/core"
	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
	editTags    []string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Update a note",
	Long: `Update a note's title, content or tags. Only the flags you pass are
changed. Editing the content of a locked note is refused; unlock it first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		service, _, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		var patch core.Patch
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitle
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &editContent
		}
		if cmd.Flags().Changed("tag") {
			patch.Tags = &editTags
		}

		note, err := service.Update(context.Background(), id, patch)
		if err != nil {
			if errors.Is(err, core.ErrNoteLocked) {
				fatal("Note is locked", err)
			}
			fatal("Failed to update note", err)
		}

		fmt.Printf("Updated note %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content (markup)")
	editCmd.Flags().StringSliceVar(&editTags, "tag", nil, "Replace tags (repeatable)")
}
