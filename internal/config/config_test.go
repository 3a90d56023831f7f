// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"modlink-cli/internal/discovery"
	"modlink-cli/internal/testutil"
)

// isolate runs the test from an empty working directory with the platform
// config dir redirected to a temp dir, so no real config file leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	workDir := t.TempDir()
	cfgDir := t.TempDir()

	restore := testutil.MustChdir(t, workDir)
	t.Cleanup(restore)

	SetConfigDirOverride(cfgDir)
	t.Cleanup(Reset)

	return cfgDir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BuildRoot != "android" {
		t.Errorf("BuildRoot = %q, want android", cfg.BuildRoot)
	}
	if cfg.Commands.Primary != discovery.DefaultPrimaryCommand {
		t.Errorf("Commands.Primary = %q", cfg.Commands.Primary)
	}
	if cfg.Commands.Fallback != discovery.DefaultFallbackCommand {
		t.Errorf("Commands.Fallback = %q", cfg.Commands.Fallback)
	}
	if cfg.Commands.Probe != discovery.DefaultProbeCommand {
		t.Errorf("Commands.Probe = %q", cfg.Commands.Probe)
	}
	if cfg.Generate.OutputDir != DefaultOutputDir {
		t.Errorf("Generate.OutputDir = %q", cfg.Generate.OutputDir)
	}
	if cfg.UI.Verbose {
		t.Error("UI.Verbose = true, want false")
	}
}

func TestLoad_LocalFileTakesPrecedence(t *testing.T) {
	cfgDir := isolate(t)

	testutil.MustWriteFile(t, filepath.Join(cfgDir, "modlink.cue"),
		`build_root: "from-config-dir"`)
	testutil.MustWriteFile(t, "modlink.cue",
		`build_root: "from-local"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BuildRoot != "from-local" {
		t.Errorf("BuildRoot = %q, want from-local", cfg.BuildRoot)
	}
}

func TestLoad_ConfigDirFile(t *testing.T) {
	cfgDir := isolate(t)

	testutil.MustWriteFile(t, filepath.Join(cfgDir, "modlink.cue"), `
build_root: "app/android"
commands: primary: "pnpm rn-config"
generate: app_id: "com.example.app"
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BuildRoot != "app/android" {
		t.Errorf("BuildRoot = %q", cfg.BuildRoot)
	}
	if cfg.Commands.Primary != "pnpm rn-config" {
		t.Errorf("Commands.Primary = %q", cfg.Commands.Primary)
	}
	// Unset fields keep their defaults after the merge.
	if cfg.Commands.Fallback != discovery.DefaultFallbackCommand {
		t.Errorf("Commands.Fallback = %q, want default", cfg.Commands.Fallback)
	}
	if cfg.Generate.AppID != "com.example.app" {
		t.Errorf("Generate.AppID = %q", cfg.Generate.AppID)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.cue")
	testutil.MustWriteFile(t, path, `build_root: "custom/android"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BuildRoot != "custom/android" {
		t.Errorf("BuildRoot = %q", cfg.BuildRoot)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: "/nonexistent/modlink.cue",
	})
	if err == nil {
		t.Fatal("Load() error = nil, want not-found error")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("error = %q", err)
	}
}

func TestLoad_InvalidCUE(t *testing.T) {
	isolate(t)

	testutil.MustWriteFile(t, "modlink.cue", `build_root: 42`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err == nil {
		t.Fatal("Load() error = nil, want schema violation")
	}
	if !strings.Contains(err.Error(), "build_root") {
		t.Errorf("error %q should name the offending field", err)
	}
}

func TestLoad_BrokenSyntax(t *testing.T) {
	isolate(t)

	testutil.MustWriteFile(t, "modlink.cue", `build_root: "unterminated`)

	if _, err := NewProvider().Load(context.Background(), LoadOptions{}); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	isolate(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{}); err == nil {
		t.Fatal("Load() error = nil, want cancellation")
	}
}

func TestResolvedPath(t *testing.T) {
	isolate(t)

	path, err := ResolvedPath(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("ResolvedPath() error = %v", err)
	}
	if path != "" {
		t.Errorf("ResolvedPath() = %q, want empty with no config file", path)
	}

	testutil.MustWriteFile(t, "modlink.cue", `build_root: "android"`)
	path, err = ResolvedPath(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("ResolvedPath() error = %v", err)
	}
	if path != "modlink.cue" {
		t.Errorf("ResolvedPath() = %q, want modlink.cue", path)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	cfgDir := isolate(t)

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if filepath.Dir(path) != cfgDir {
		t.Errorf("path = %q, want it under %q", path, cfgDir)
	}

	content := testutil.MustReadFile(t, path)
	if !strings.Contains(content, `build_root: "android"`) {
		t.Errorf("generated config missing build_root:\n%s", content)
	}

	// Idempotent: an existing file is left alone.
	testutil.MustWriteFile(t, path, "// customized\n")
	again, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() second call error = %v", err)
	}
	if again != path {
		t.Errorf("second call path = %q, want %q", again, path)
	}
	if got := testutil.MustReadFile(t, path); got != "// customized\n" {
		t.Error("CreateDefaultConfig() overwrote an existing file")
	}
}

func TestGenerateCUE_RoundTripsThroughLoad(t *testing.T) {
	isolate(t)

	src := DefaultConfig()
	src.ProjectRoot = "/w/app"
	src.Generate.AppID = "com.example.app"
	src.UI.Verbose = true

	testutil.MustWriteFile(t, "modlink.cue", GenerateCUE(src))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProjectRoot != "/w/app" {
		t.Errorf("ProjectRoot = %q", cfg.ProjectRoot)
	}
	if cfg.Generate.AppID != "com.example.app" {
		t.Errorf("Generate.AppID = %q", cfg.Generate.AppID)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := &Config{
		ProjectRoot: "/w/app",
		BuildRoot:   "/w/app/android",
		Commands: CommandsConfig{
			Primary:  "p",
			Fallback: "f",
			Probe:    "pr",
		},
	}

	opts := cfg.EngineOptions()
	if opts.BuildRoot != "/w/app/android" || opts.ProjectRoot != "/w/app" {
		t.Errorf("roots = %q, %q", opts.BuildRoot, opts.ProjectRoot)
	}
	if opts.PrimaryCommand != "p" || opts.FallbackCommand != "f" || opts.ProbeCommand != "pr" {
		t.Errorf("commands = %+v", opts)
	}
}
