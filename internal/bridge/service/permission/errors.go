package permission

import (
	"fmt"
)

// TriggerError is returned when the consent-dialog probe itself fails.
type TriggerError struct {
	Domain Domain
	Output string
	Cause  error
}

func (e *TriggerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("consent prompt for %s failed: %v", e.Domain, e.Cause)
	}
	return fmt.Sprintf("consent prompt for %s failed: %s", e.Domain, e.Output)
}

func (e *TriggerError) Unwrap() error {
	return e.Cause
}
