// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for avagen-setup.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"avagen-cli/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose passes child-process output through and shows error chains.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string

	// rootCmd runs the full installation when invoked without a subcommand.
	rootCmd = &cobra.Command{
		Use:   "avagen-setup",
		Short: "Install the Avatar Generator and its module environments",
		Long: TitleStyle.Render("avagen-setup") + SubtitleStyle.Render(" - Avatar Generator installer") + `

avagen-setup bootstraps a working Avatar Generator installation:
it validates the required tools (git, Python, Blender), clones the
project with its sub-modules, provisions one isolated Python
environment per module, and writes a self-locating launcher script.

Re-running is safe: existing environments and an already-cloned
repository are reused, while dependency installation re-runs so
manifest changes propagate.

` + SubtitleStyle.Render("Examples:") + `
  avagen-setup              Run the full installation
  avagen-setup check        Validate prerequisites only`,
		SilenceUsage: true,
		RunE:         runInstall,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")

	rootCmd.AddCommand(checkCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig reads the optional config file, honoring the --config flag.
func loadConfig(ctx context.Context) (*config.Config, error) {
	opts := config.LoadOptions{}
	if cfgFile != "" {
		opts.ConfigFilePath = cfgFile
	}
	return config.NewProvider().Load(ctx, opts)
}
