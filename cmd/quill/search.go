package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes",
	Long: `Search notes by case-insensitive substring against title, content and
tags. Locked notes never appear in results. An empty query lists everything.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		service, _, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		notes, err := service.Search(context.Background(), query)
		if err != nil {
			fatal("Search failed", err)
		}

		if searchJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, note := range notes {
			fmt.Printf("%s  %s\n", note.ID, note.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
