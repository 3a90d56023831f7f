// SPDX-License-Identifier: MPL-2.0

package main

import "fmt"

// Exit codes distinguish recoverable-degradation builds (which exit zero)
// from configuration defects the user must fix.
const (
	// ExitFailure is a generic failure (filesystem errors, bad flags).
	ExitFailure = 1
	// ExitConfigDefect indicates malformed external configuration or a
	// module name collision.
	ExitConfigDefect = 2
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
