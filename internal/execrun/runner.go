// SPDX-License-Identifier: MPL-2.0

package execrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

type (
	// Result holds the outcome of one command invocation.
	Result struct {
		// Stdout is the fully buffered standard output.
		Stdout []byte
		// Stderr is the fully buffered standard error, kept for diagnostics
		// but never parsed.
		Stderr []byte
		// ExitCode is the process exit status. It is meaningful only when
		// Err is nil.
		ExitCode int
		// Err is set when the process could not be started at all (missing
		// binary, bad working directory, cancelled context). A non-zero
		// exit of a successfully started process is not an Err.
		Err error
	}

	// Runner invokes an external command in a working directory and blocks
	// until it exits.
	Runner interface {
		Run(ctx context.Context, argv []string, dir string) *Result
	}

	// ExecRunner is the production Runner backed by os/exec.
	ExecRunner struct{}
)

// Success reports whether the process started and exited zero.
func (r *Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// NewErrorResult creates a Result for a command that could not be started.
func NewErrorResult(err error) *Result {
	return &Result{ExitCode: -1, Err: err}
}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes argv in dir and captures both output streams. The call
// blocks until the process exits or ctx is cancelled; cancellation kills
// the child and surfaces as a start/launch failure.
func (r *ExecRunner) Run(ctx context.Context, argv []string, dir string) *Result {
	if len(argv) == 0 {
		return NewErrorResult(fmt.Errorf("empty command"))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res
		}
		res.ExitCode = -1
		res.Err = fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	return res
}
