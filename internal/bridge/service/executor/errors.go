package executor

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when the helper exceeds its wall-clock timeout.
var ErrTimeout = errors.New("helper execution timeout")

// SpawnError is returned when the helper process could not be started at
// all (binary disappeared between resolution and spawn, execute permission
// revoked, pipe setup failed).
type SpawnError struct {
	Path  string
	Cause error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start helper %s: %v", e.Path, e.Cause)
}

func (e *SpawnError) Unwrap() error {
	return e.Cause
}
