// SPDX-License-Identifier: MPL-2.0

package execrun

import (
	"fmt"

	"mvdan.cc/sh/v3/shell"
)

// Split breaks a configured command string into argv using shell field
// splitting rules, so quoted arguments survive intact:
//
//	Split(`node -e "require.resolve('./yarn.lock')"`)
//	// → ["node", "-e", "require.resolve('./yarn.lock')"]
//
// Environment expansion is performed against the current process
// environment, matching what a shell invocation of the same string would do.
func Split(command string) ([]string, error) {
	fields, err := shell.Fields(command, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", command, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("invalid command %q: no fields", command)
	}
	return fields, nil
}
