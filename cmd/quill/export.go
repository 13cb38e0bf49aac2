package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
)

var (
	exportOut      string
	exportPassword string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Render a note's markup to HTML",
	Long: `Export renders a note's content to HTML on stdout (or into a file
with --out). A locked note needs --password; nothing is persisted.`,
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
			if exportPassword == "" {
				fatal("Note is locked", fmt.Errorf("pass --password to export it"))
			}
			note, err = service.Reveal(ctx, id, exportPassword)
			if err != nil {
				fatal("Failed to decrypt note", err)
			}
		}

		var buf bytes.Buffer
		fmt.Fprintf(&buf, "<h1>%s</h1>\n", note.Title)
		if err := goldmark.Convert([]byte(note.Content), &buf); err != nil {
			fatal("Failed to render note", err)
		}

		if exportOut == "" {
			fmt.Print(buf.String())
			return
		}
		if err := os.WriteFile(exportOut, buf.Bytes(), 0644); err != nil {
			fatal("Failed to write output file", err)
		}
		fmt.Printf("Exported %s to %s\n", note.ID, exportOut)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().StringVarP(&exportPassword, "password", "p", "", "Password for a locked note")
}
