package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/adapters/kv"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/typed"
	"github.com/spf13/cobra"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "A personal note vault with per-note password protection",
	Long: `Quill keeps your notes in a local vault: one directory, one atomically
written collection file. Notes can be pinned, tagged, searched, and
individually locked with a password.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openService locates the vault root from the working directory, applies the
// vault config, and wires up a service. Most commands go through here; init
// is the exception since it creates the root.
func openService(extra ...quill.Option) (*core.Service, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get working directory: %w", err)
	}

	root, err := quill.FindRoot(wd)
	if err != nil {
		return nil, "", fmt.Errorf("not a quill vault (run 'quill init' first): %w", err)
	}

	cfg, err := quill.LoadVaultConfig(root)
	if err != nil {
		return nil, "", err
	}

	opts := []quill.Option{
		quill.WithMustExist(true),
		quill.WithLogger(slog.Default()),
	}
	opts = append(opts, extra...)

	service, err := quill.New(cfg.StoreDir(root), opts...)
	if err != nil {
		return nil, "", err
	}
	return service, root, nil
}

// openSettings gives typed access to the preferences persisted next to the
// collection. Settings live under their own key, so this never touches notes.
func openSettings() (*typed.Box[core.Settings], error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	root, err := quill.FindRoot(wd)
	if err != nil {
		return nil, fmt.Errorf("not a quill vault (run 'quill init' first): %w", err)
	}

	cfg, err := quill.LoadVaultConfig(root)
	if err != nil {
		return nil, err
	}

	store := kv.NewFileStore(cfg.StoreDir(root))
	return typed.NewBox[core.Settings](store, kv.SettingsKey), nil
}
