// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"modlink-cli/internal/graph"
	"modlink-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newLinkCommand creates `modlink link`: project the resolved module list
// onto the host build graph by emitting Gradle fragments.
func newLinkCommand(app *App) *cobra.Command {
	var (
		appProject   string
		settingsOut  string
		buildOut     string
		generatedSrc string
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Emit build-graph fragments for autolinked modules",
		Long: `Emit the two build-graph mutations autolinking needs as Gradle fragments:

  - a settings fragment including each module as a sub-project rooted at
    its source directory (apply from settings.gradle), and
  - a build fragment adding each module as a compile dependency of the
    application project (apply from the app's build.gradle).

Relative output paths are resolved against the build root.`,
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

			frags := graph.NewGradleFragments()
			binder := graph.NewBinder(frags, appProject)

			if err := binder.IncludeAsProjects(res); err != nil {
				return app.commandError(err)
			}
			if err := binder.AddAsDependencies(res); err != nil {
				return app.commandError(err)
			}
			if generatedSrc != "" {
				if err := binder.BindGeneratedSources(generatedSrc); err != nil {
					return app.commandError(err)
				}
			}

			outputs := []struct {
				path    string
				content string
			}{
				{resolveFragmentPath(settingsOut, cfg.BuildRoot), frags.SettingsFragment()},
				{resolveFragmentPath(buildOut, cfg.BuildRoot), frags.BuildFragment()},
			}

			for _, out := range outputs {
				if err := writeFragment(out.path, out.content); err != nil {
					return app.commandError(err)
				}
				fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Wrote"), IDStyle.Render(out.path))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&appProject, "app-project", "app", "identifier of the application project receiving the dependencies")
	cmd.Flags().StringVar(&settingsOut, "settings-out", "autolink.settings.gradle", "settings fragment output path")
	cmd.Flags().StringVar(&buildOut, "build-out", "autolink.build.gradle", "build fragment output path")
	cmd.Flags().StringVar(&generatedSrc, "generated-src", "", "generated-sources directory to append to the app's source set")

	return cmd
}

func resolveFragmentPath(path, buildRoot string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(buildRoot, path)
}

func writeFragment(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return issue.NewErrorContext().
			WithOperation("create fragment directory").
			WithResource(filepath.Dir(path)).
			WithSuggestion("Check that the build directory is writable").
			Wrap(err).
			BuildError()
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return issue.NewErrorContext().
			WithOperation("write build fragment").
			WithResource(path).
			WithSuggestion("Check that the build directory is writable").
			Wrap(err).
			BuildError()
	}
	return nil
}
