package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/quill/pkg/crypt"
	"github.com/spf13/cobra"
)

var unlockPassword string

// unlockCmd represents the unlock command
var unlockCmd = &cobra.Command{
	Use:   "unlock [id]",
	Short: "Remove password protection from a note",
	Long: `Unlock decrypts a note and persists it as plaintext again: the content,
the encrypted flag and the password digest are cleared in one update. To view
a locked note without persisting plaintext, use 'quill show --password'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		service, _, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		note, err := service.Decrypt(context.Background(), id, unlockPassword)
		if err != nil {
			if errors.Is(err, crypt.ErrInvalidPassword) {
				fatal("Wrong password", err)
			}
			fatal("Failed to unlock note", err)
		}

		fmt.Printf("Unlocked %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(unlockCmd)
	unlockCmd.Flags().StringVarP(&unlockPassword, "password", "p", "", "Password the note was locked with")
	unlockCmd.MarkFlagRequired("password")
}
