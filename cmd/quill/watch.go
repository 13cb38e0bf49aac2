package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchPattern string

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault for external changes",
	Long: `Watch prints an event line whenever the collection file is rewritten by
another process. Runs until interrupted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, root, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Printf("Watching %s (pattern %q). Ctrl-C to stop.\n", root, watchPattern)
		for event := range events {
			ts := time.Unix(event.Timestamp, 0).Format(time.RFC3339)
			fmt.Printf("%s  %-6s  %s\n", ts, event.Type, event.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "**", "Doublestar glob matched against note IDs")
}
