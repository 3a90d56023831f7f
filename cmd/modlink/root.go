// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string
	// flagProjectRoot overrides the derived project root.
	flagProjectRoot string
	// flagBuildRoot overrides the platform build directory.
	flagBuildRoot string
)

// newRootCommand builds the full command tree over one App.
func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "modlink",
		Short: "Autolink native modules into the host build",
		Long: TitleStyle.Render("modlink") + SubtitleStyle.Render(" - native module autolinking") + `

modlink discovers the native add-on modules a project depends on by
querying the workspace's configuration command, then wires them into the
host build: sub-project inclusion, compile dependencies, and a generated
PackageList manifest the application runtime loads modules from.

` + SubtitleStyle.Render("Typical build integration:") + `
  modlink resolve           Inspect what would be autolinked
  modlink link              Emit Gradle fragments for inclusion and deps
  modlink generate          Write the PackageList manifest`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				app.Logger.SetLevel(log.DebugLevel)
			}
		},
	}

	// Global flags
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./modlink.cue)")
	root.PersistentFlags().StringVar(&flagProjectRoot, "project-root", "", "native-module workspace root (default: parent of build root)")
	root.PersistentFlags().StringVar(&flagBuildRoot, "build-root", "", "platform build directory (default: ./android)")

	root.AddCommand(newResolveCommand(app))
	root.AddCommand(newLinkCommand(app))
	root.AddCommand(newGenerateCommand(app))
	root.AddCommand(newConfigCommand(app))

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. Called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
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
