package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// pinCmd represents the pin command
var pinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Toggle a note's pinned flag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		service, _, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		note, err := service.TogglePin(context.Background(), id)
		if err != nil {
			fatal("Failed to toggle pin", err)
		}

		if note.Pinned {
			fmt.Printf("Pinned %s\n", note.ID)
		} else {
			fmt.Printf("Unpinned %s\n", note.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
}
