// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"path/filepath"

	"modlink-cli/internal/manifest"

	"github.com/spf13/cobra"
)

// newGenerateCommand creates `modlink generate`: render the PackageList
// manifest into the generated-sources directory.
func newGenerateCommand(app *App) *cobra.Command {
	var (
		appID     string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the PackageList manifest",
		Long: `Generate the PackageList source file enumerating every autolinked module.

The file is regenerated in full on every invocation; its content is a
deterministic function of the resolved module list. A relative output
directory is resolved against the project root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := app.LoadConfig(ctx)
			if err != nil {
				return app.commandError(err)
			}

			if appID == "" {
				appID = cfg.Generate.AppID
			}
			if appID == "" {
				return app.commandError(fmt.Errorf("application id is required: pass --app-id or set generate.app_id"))
			}
			if outputDir == "" {
				outputDir = cfg.Generate.OutputDir
			}

			engine := app.Engine(cfg.EngineOptions())
			res, err := engine.Resolve(ctx)
			if err != nil {
				return app.commandError(err)
			}

			if !filepath.IsAbs(outputDir) {
				outputDir = filepath.Join(engine.ProjectRoot(), outputDir)
			}

			if err := manifest.Generate(outputDir, appID, res); err != nil {
				return app.commandError(err)
			}

			fmt.Fprintf(app.stdout, "%s %s (%d module(s))\n",
				SuccessStyle.Render("Generated"),
				IDStyle.Render(filepath.Join(outputDir, manifest.FileName)),
				len(res.Modules))
			return nil
		},
	}

	cmd.Flags().StringVar(&appID, "app-id", "", "host application identifier for the BuildConfig import")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "generated-sources directory (default from config)")

	return cmd
}
