package bridge

import (
	"fmt"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/permission"
)

// PermissionDeniedError is returned when both the original execution and
// the post-consent retry failed with a permission signature.
type PermissionDeniedError struct {
	Domain     permission.Domain
	RawMessage string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s access denied; grant access under System Settings > Privacy & Security (helper said: %s)", e.Domain, e.RawMessage)
}
