// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"testing"

	"modlink-cli/internal/execrun"
)

func TestSelectCommand_ProbeSuccessPicksPrimary(t *testing.T) {
	runner := newStubRunner().on("node", okResult(""))
	engine := NewEngine(Options{BuildRoot: "/w/android"}, runner, discardLogger())

	got := engine.selectCommand(context.Background(), "/w")
	if got != DefaultPrimaryCommand {
		t.Errorf("selectCommand() = %q, want primary %q", got, DefaultPrimaryCommand)
	}
}

func TestSelectCommand_ProbeExitFailurePicksFallback(t *testing.T) {
	runner := newStubRunner().on("node", exitResult(1, "Cannot find module './yarn.lock'"))
	engine := NewEngine(Options{BuildRoot: "/w/android"}, runner, discardLogger())

	got := engine.selectCommand(context.Background(), "/w")
	if got != DefaultFallbackCommand {
		t.Errorf("selectCommand() = %q, want fallback %q", got, DefaultFallbackCommand)
	}
}

func TestSelectCommand_ProbeStartFailurePicksFallback(t *testing.T) {
	// node is unscripted, so the stub reports a start failure.
	runner := newStubRunner()
	engine := NewEngine(Options{BuildRoot: "/w/android"}, runner, discardLogger())

	got := engine.selectCommand(context.Background(), "/w")
	if got != DefaultFallbackCommand {
		t.Errorf("selectCommand() = %q, want fallback %q", got, DefaultFallbackCommand)
	}
}

func TestSelectCommand_UnsplittableProbePicksFallback(t *testing.T) {
	runner := newStubRunner()
	engine := NewEngine(Options{
		BuildRoot:    "/w/android",
		ProbeCommand: `node -e "unterminated`,
	}, runner, discardLogger())

	got := engine.selectCommand(context.Background(), "/w")
	if got != DefaultFallbackCommand {
		t.Errorf("selectCommand() = %q, want fallback %q", got, DefaultFallbackCommand)
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner invoked %d times for an unusable probe, want 0", len(runner.calls))
	}
}

func TestSelectCommand_CustomCommands(t *testing.T) {
	runner := newStubRunner().on("test", &execrun.Result{})
	engine := NewEngine(Options{
		BuildRoot:       "/w/android",
		PrimaryCommand:  "pnpm rn-config",
		FallbackCommand: "bunx rn-config",
		ProbeCommand:    "test -f pnpm-lock.yaml",
	}, runner, discardLogger())

	got := engine.selectCommand(context.Background(), "/w")
	if got != "pnpm rn-config" {
		t.Errorf("selectCommand() = %q, want custom primary", got)
	}
}
