// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"modlink-cli/internal/config"
	"modlink-cli/internal/discovery"
	"modlink-cli/internal/execrun"
	"modlink-cli/internal/issue"
	"modlink-cli/pkg/nativecfg"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: all command handlers receive an App reference
	// and delegate through it. One App corresponds to one build invocation,
	// so the discovery engine it owns is created once and every command
	// phase observes the same memoized resolution.
	App struct {
		Config config.Provider
		Runner execrun.Runner
		Logger *log.Logger

		stdout io.Writer
		stderr io.Writer

		mu     sync.Mutex
		engine *discovery.Engine
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp; tests supply
	// stubs to isolate specific behavior.
	Dependencies struct {
		Config config.Provider
		Runner execrun.Runner
		Logger *log.Logger
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp builds an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runner == nil {
		deps.Runner = execrun.NewExecRunner()
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(deps.Stderr, log.Options{
			Prefix: config.AppName,
		})
	}

	return &App{
		Config: deps.Config,
		Runner: deps.Runner,
		Logger: deps.Logger,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// LoadConfig loads the tool configuration and applies the global flag
// overrides on top of it.
func (a *App) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return nil, err
	}

	if flagProjectRoot != "" {
		cfg.ProjectRoot = flagProjectRoot
	}
	if flagBuildRoot != "" {
		cfg.BuildRoot = flagBuildRoot
	}
	if verbose {
		cfg.UI.Verbose = true
	}

	return cfg, nil
}

// Engine returns the App's discovery engine, creating it on first use.
// Later calls return the same engine regardless of opts: the resolution is
// computed at most once per build invocation, and recomputing it between
// phases would be a correctness bug, not an optimization miss.
func (a *App) Engine(opts discovery.Options) *discovery.Engine {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine == nil {
		a.engine = discovery.NewEngine(opts, a.Runner, a.Logger)
	}
	return a.engine
}

// commandError renders err for the user and wraps it in an ExitError with
// the appropriate exit code. Configuration defects (malformed external
// config, module name collisions) get a distinct code so build wrappers can
// tell them apart from infrastructure failures.
func (a *App) commandError(err error) error {
	code := ExitFailure

	var malformed *nativecfg.MalformedConfigError
	var collision *discovery.ModuleCollisionError
	if errors.As(err, &malformed) || errors.As(err, &collision) {
		code = ExitConfigDefect
	}

	// ActionableErrors carry suggestions worth more than the one-line
	// message the command runner prints.
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) && len(actionable.Suggestions) > 0 {
		fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+actionable.Format(verbose))
	}

	return &ExitError{Code: code, Err: err}
}
