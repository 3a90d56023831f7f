// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"

	"modlink-cli/internal/execrun"
	"modlink-cli/pkg/nativecfg"

	"github.com/charmbracelet/log"
)

// Default command strings. The probe resolves the workspace lockfile through
// node's module resolver; success means the primary package-manager family is
// in charge of this workspace.
const (
	DefaultPrimaryCommand  = "yarn --silent react-native config"
	DefaultFallbackCommand = "npx --quiet react-native config"
	DefaultProbeCommand    = `node -e "require.resolve('./yarn.lock')"`
)

type (
	// Module is the normalized record of one discovered native module.
	Module struct {
		// Name is the dependency's declared package name, taken verbatim
		// from the external source.
		Name string
		// SanitizedName is Name with path separators replaced by
		// underscores, usable as a build-graph project identifier. Unique
		// within a Resolution.
		SanitizedName string
		// SourceDir is the path to the module's buildable source tree.
		SourceDir string
		// PackageInstance is the Java expression constructing the module's
		// registration object.
		PackageInstance string
		// PackageImport is the Java import statement preceding
		// PackageInstance in generated code.
		PackageImport string
	}

	// Resolution is the ordered outcome of one discovery run. Order is the
	// order the external source emitted the dependencies and is preserved
	// through every downstream projection.
	Resolution struct {
		Modules []Module
	}

	// Options configures an Engine.
	Options struct {
		// BuildRoot is the platform-specific build directory the host
		// build is rooted at (e.g. ./android).
		BuildRoot string
		// ProjectRoot, when non-empty, overrides the derived project root.
		ProjectRoot string
		// PrimaryCommand runs when the probe succeeds. Empty selects
		// DefaultPrimaryCommand.
		PrimaryCommand string
		// FallbackCommand runs when the probe fails. Empty selects
		// DefaultFallbackCommand.
		FallbackCommand string
		// ProbeCommand is the lightweight package-manager probe. Empty
		// selects DefaultProbeCommand.
		ProbeCommand string
	}

	// Engine resolves the module list once per instance and memoizes the
	// outcome, success or failure.
	Engine struct {
		opts   Options
		runner execrun.Runner
		logger *log.Logger

		mu       sync.Mutex
		resolved bool
		res      *Resolution
		err      error
	}
)

// Empty reports whether the resolution contains no modules.
func (r *Resolution) Empty() bool {
	return r == nil || len(r.Modules) == 0
}

// Sanitize turns a package name into a build-graph project identifier by
// replacing path separators with underscores. Pure and deterministic.
func Sanitize(name string) string {
	return strings.ReplaceAll(name, "/", "_")
}

// NewEngine creates an Engine. A nil runner gets the production ExecRunner;
// a nil logger gets the default logger.
func NewEngine(opts Options, runner execrun.Runner, logger *log.Logger) *Engine {
	if runner == nil {
		runner = execrun.NewExecRunner()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{opts: opts, runner: runner, logger: logger}
}

// ProjectRoot returns the directory the external command runs in: the
// explicit override when configured, otherwise the parent of the build
// root, on the assumption that the native-module workspace lives one level
// above the platform-specific build directory.
func (e *Engine) ProjectRoot() string {
	if e.opts.ProjectRoot != "" {
		return e.opts.ProjectRoot
	}
	return filepath.Dir(filepath.Clean(e.opts.BuildRoot))
}

// Resolve returns the module list, computing it on the first call and
// returning the memoized outcome afterwards. A second call never spawns a
// process, even when the first call failed.
func (e *Engine) Resolve(ctx context.Context) (*Resolution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.resolved {
		return e.res, e.err
	}

	e.res, e.err = e.resolve(ctx)
	e.resolved = true
	return e.res, e.err
}

func (e *Engine) resolve(ctx context.Context) (*Resolution, error) {
	root := e.ProjectRoot()
	command := e.selectCommand(ctx, root)

	argv, err := execrun.Split(command)
	if err != nil {
		// A command string that cannot be field-split is a configuration
		// defect, not a runtime degradation.
		return nil, err
	}

	e.logger.Debug("running config command", "command", command, "dir", root)
	result := e.runner.Run(ctx, argv, root)

	stdout := bytes.TrimSpace(result.Stdout)
	if result.Err != nil || (result.ExitCode != 0 && len(stdout) == 0) {
		reason := result.Err
		if reason == nil {
			e.logger.Warn("autolinking config command exited abnormally",
				"command", command, "exitCode", result.ExitCode,
				"stderr", strings.TrimSpace(string(result.Stderr)))
		} else {
			e.logger.Warn("autolinking config command could not run",
				"command", command, "err", reason)
		}
		e.logger.Warn("autolinking failed for an unknown cause, continuing without autolinked packages")
		return &Resolution{}, nil
	}

	cfg, err := nativecfg.Parse(stdout, command)
	if err != nil {
		return nil, err
	}

	return e.resolveModules(cfg)
}

// resolveModules filters the parsed dependencies down to Android-capable
// entries and normalizes them, preserving input order.
func (e *Engine) resolveModules(cfg *nativecfg.Config) (*Resolution, error) {
	res := &Resolution{}
	firstByID := make(map[string]string, len(cfg.Dependencies))

	for _, dep := range cfg.Dependencies {
		if !dep.HasAndroid() {
			e.logger.Info("skipping dependency without an android module", "name", dep.Name)
			continue
		}

		id := Sanitize(dep.Name)
		if first, exists := firstByID[id]; exists {
			return nil, &ModuleCollisionError{
				SanitizedName: id,
				FirstName:     first,
				SecondName:    dep.Name,
			}
		}
		firstByID[id] = dep.Name

		android := dep.Platforms.Android
		res.Modules = append(res.Modules, Module{
			Name:            dep.Name,
			SanitizedName:   id,
			SourceDir:       android.SourceDir,
			PackageInstance: android.PackageInstance,
			PackageImport:   android.PackageImportPath,
		})
	}

	return res, nil
}
