package cli

import (
	"errors"
	"fmt"
)

// exitError carries a process exit code for a failure that the command has
// already reported on its own output.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// ExitCode returns an error that makes Execute exit with code without
// printing anything further.
func ExitCode(code int) error {
	return &exitError{code: code}
}

// ExitCodeOf maps a command error to a process exit code.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 1
}
