package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/quill/pkg/crypt"
	"github.com/spf13/cobra"
)

var (
	showJSON     bool
	showPassword string
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a note",
	Long: `Show a note by its ID. Outputs the raw content by default, or a JSON
object with --json. A locked note needs --password; the stored note stays
encrypted, only the output is decrypted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		service, _, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		ctx := context.Background()
		note, err := service.Get(ctx, id)
		if err != nil {
			fatal("Failed to read note", err)
		}

		if note.Locked() {
			if showPassword == "" {
				fmt.Fprintln(os.Stderr, "Note is locked. Pass --password to view it.")
				os.Exit(1)
			}
			note, err = service.Reveal(ctx, id, showPassword)
			if err != nil {
				if errors.Is(err, crypt.ErrInvalidPassword) {
					fatal("Wrong password", err)
				}
				fatal("Failed to decrypt note", err)
			}
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Println(note.Content)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	showCmd.Flags().StringVarP(&showPassword, "password", "p", "", "Password for a locked note")
}
