// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"modlink-cli/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `modlink config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage modlink configuration",
		Long: `Manage modlink configuration.

Configuration is looked up as ./modlink.cue first, then:
  - Linux: ~/.config/modlink/modlink.cue
  - macOS: ~/Library/Application Support/modlink/modlink.cue
  - Windows: %APPDATA%\modlink\modlink.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(cmd.Context())
			if err != nil {
				return app.commandError(err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return app.commandError(err)
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created"), IDStyle.Render(path))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvedPath(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return app.commandError(err)
			}
			if path == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("No config file found; using defaults."))
				return nil
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}
