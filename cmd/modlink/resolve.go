// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newResolveCommand creates `modlink resolve`: run discovery and print the
// resolved module list without touching the build.
func newResolveCommand(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve autolinked native modules",
		Long: `Resolve the native modules the workspace's configuration command reports,
without mutating the build. Useful for checking what autolinking would do.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := app.LoadConfig(ctx)
			if err != nil {
				return app.commandError(err)
			}

			res, err := app.Engine(cfg.EngineOptions()).Resolve(ctx)
			if err != nil {
				return app.commandError(err)
			}

			if asJSON {
				enc := json.NewEncoder(app.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Modules)
			}

			if res.Empty() {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("No native modules found."))
				return nil
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render(fmt.Sprintf("%d native module(s)", len(res.Modules))))
			for _, m := range res.Modules {
				fmt.Fprintf(app.stdout, "  %s %s\n", IDStyle.Render(m.SanitizedName), SubtitleStyle.Render(m.Name))
				fmt.Fprintf(app.stdout, "    %s\n", m.SourceDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the module list as JSON")

	return cmd
}
