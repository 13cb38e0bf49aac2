package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note from the vault",
	Long: `Delete permanently removes a note from the vault. There is no undo and
no trash. Deleting an ID that does not exist is not an error.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		service, _, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		if err := service.Delete(context.Background(), id); err != nil {
			fatal("Failed to delete note", err)
		}

		fmt.Printf("Note deleted: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
