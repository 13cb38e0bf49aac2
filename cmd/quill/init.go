package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/quill"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a quill vault",
	Long:  `Initialize a new quill vault in the current directory, creating an empty collection file.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		_, err = quill.Init(cwd,
			quill.WithAutoInit(true),
			quill.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize vault", err)
		}

		fmt.Println("Initialized empty quill vault in", cwd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
