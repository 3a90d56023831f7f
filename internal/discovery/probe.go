// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"

	"modlink-cli/internal/execrun"
)

// selectCommand picks the config command variant to run. The probe's own
// failures are deliberately swallowed: they only ever downgrade the choice
// to the fallback command, never abort discovery.
func (e *Engine) selectCommand(ctx context.Context, root string) string {
	primary := e.opts.PrimaryCommand
	if primary == "" {
		primary = DefaultPrimaryCommand
	}
	fallback := e.opts.FallbackCommand
	if fallback == "" {
		fallback = DefaultFallbackCommand
	}
	probe := e.opts.ProbeCommand
	if probe == "" {
		probe = DefaultProbeCommand
	}

	argv, err := execrun.Split(probe)
	if err != nil {
		e.logger.Debug("package-manager probe is unusable, selecting fallback command", "err", err)
		return fallback
	}

	result := e.runner.Run(ctx, argv, root)
	if result.Success() {
		return primary
	}

	e.logger.Debug("package-manager probe failed, selecting fallback command",
		"probe", probe, "exitCode", result.ExitCode, "err", result.Err)
	return fallback
}
