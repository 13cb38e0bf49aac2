package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/crypt"
	"github.com/spf13/cobra"
)

var (
	lockPassword string
	lockGenerate bool
)

// lockCmd represents the lock command
var lockCmd = &cobra.Command{
	Use:   "lock [id]",
	Short: "Password-protect a note",
	Long: `Lock encrypts a note's content with the given password. The content,
the encrypted flag and the password digest are persisted together. A locked
note is excluded from search and refuses content edits until unlocked.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		service, _, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		password := lockPassword
		if lockGenerate {
			password, err = crypt.NewEngine().GeneratePassword(16)
			if err != nil {
				fatal("Failed to generate password", err)
			}
			fmt.Printf("Generated password: %s\n", password)
		}

		note, err := service.Encrypt(context.Background(), id, password)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrEmptyPassword):
				fatal("A password is required (--password or --generate)", err)
			case errors.Is(err, crypt.ErrAlreadyEncrypted):
				fatal("Note is already locked", err)
			default:
				fatal("Failed to lock note", err)
			}
		}

		fmt.Printf("Locked %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(lockCmd)
	lockCmd.Flags().StringVarP(&lockPassword, "password", "p", "", "Password to lock with")
	lockCmd.Flags().BoolVar(&lockGenerate, "generate", false, "Generate a random password and print it")
}
