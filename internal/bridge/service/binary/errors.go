package binary

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when no candidate path passes validation.
// It carries the attempted paths for diagnostics.
type NotFoundError struct {
	Attempted []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("helper binary %q not found; attempted: %s", Name, strings.Join(e.Attempted, ", "))
}

// NotExecutableError is returned when a candidate passes the existence and
// allowlist checks but lacks the executable bit.
type NotExecutableError struct {
	Path string
}

func (e *NotExecutableError) Error() string {
	return fmt.Sprintf("helper binary %s is not executable", e.Path)
}
