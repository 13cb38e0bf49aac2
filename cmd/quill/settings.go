package main

import (
	"fmt"

	"github.com/aretw0/quill/pkg/core"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show vault preferences",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		box, err := openSettings()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		settings, err := box.Load()
		if err != nil {
			fatal("Failed to load settings", err)
		}

		theme := settings.Theme
		if theme == "" {
			theme = "default"
		}
		sortOrder := settings.SortOrder
		if sortOrder == "" {
			sortOrder = core.SortUpdated
		}
		fmt.Printf("theme: %s\nsort:  %s\n", theme, sortOrder)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a vault preference",
	Long: `Change a vault preference. Known keys:

  theme  Display theme name (free-form, used by frontends)
  sort   Listing order: updated, created or title`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		box, err := openSettings()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		settings, err := box.Load()
		if err != nil {
			fatal("Failed to load settings", err)
		}

		key, value := args[0], args[1]
		switch key {
		case "theme":
			settings.Theme = value
		case "sort":
			if !core.ValidSortOrder(value) {
				fatal("Invalid sort order", fmt.Errorf("%q is not one of updated, created, title", value))
			}
			settings.SortOrder = value
		default:
			fatal("Unknown setting", fmt.Errorf("no setting named %q", key))
		}

		if err := box.Save(settings); err != nil {
			fatal("Failed to save settings", err)
		}
		fmt.Printf("%s = %s\n", key, value)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
