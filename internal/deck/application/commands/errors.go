package commands

import "errors"

// ErrConflictingOptions is returned when enabling and disabling are both requested.
var ErrConflictingOptions = errors.New("cannot use --on and --off together")
