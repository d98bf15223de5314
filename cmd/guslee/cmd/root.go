// Package cmd provides the CLI commands for guslee.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chemchu/guslee/internal/config"
	"github.com/Chemchu/guslee/internal/engine"
	"github.com/Chemchu/guslee/internal/logging"
	"github.com/Chemchu/guslee/pkg/version"
)

var (
	configPath string
	gardenDir  string
	backend    string
	debugMode  bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the guslee CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guslee",
		Short: "Personal digital garden engine",
		Long: `guslee ingests a tree of markdown documents once, builds a ranked
full-text index and a mentions graph over it, and answers queries
against both.

Point it at a garden directory and search it:

  guslee --garden ./garden search dublin`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := ""
			if debugMode {
				level = "debug"
			}
			cleanup, err := logging.SetupDefault(level)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			loggingCleanup = cleanup
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if loggingCleanup != nil {
				loggingCleanup()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: guslee.yaml if present)")
	cmd.PersistentFlags().StringVar(&gardenDir, "garden", "", "content root (overrides config)")
	cmd.PersistentFlags().StringVar(&backend, "backend", "", "index backend: bleve or sqlite (overrides config)")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newRelatedCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig resolves configuration from file, env and flags.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = "guslee.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if gardenDir != "" {
		cfg.Garden.Dir = gardenDir
	}
	if backend != "" {
		cfg.Search.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine constructs the engine for one command invocation.
func buildEngine(cmd *cobra.Command) (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return engine.New(cmd.Context(), cfg)
}
