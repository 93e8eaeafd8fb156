package bridge

import (
	"context"
	"strings"
	"time"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/permission"
)

const (
	statusCheckFlag = "--check-permissions"

	// grantedMarker is the exact substring the helper prints when access is
	// granted. Anything else, including a zero exit with unexpected text,
	// reports not-granted: ambiguous helper output must not read as a grant.
	grantedMarker = "permissions: granted"
)

// PermissionStatus is the outcome of a read-only permission probe.
type PermissionStatus struct {
	Granted            bool
	RequiresUserAction bool
	Error              string
}

// CheckPermissions runs the helper in its dedicated status-check mode under
// the shorter status timeout. Status checks are probes: they are never
// retried and never trigger the consent dialog; a failed check is reported
// as-is.
func (b *Bridge) CheckPermissions(ctx context.Context, domain permission.Domain) (*PermissionStatus, error) {
	path, err := b.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	args := []string{statusCheckFlag, "--domain", string(domain)}
	timeout := time.Duration(b.config.Bridge.StatusCheckTimeoutSeconds) * time.Second

	res, err := b.executor.Run(ctx, path, args, timeout)
	if err != nil {
		return nil, err
	}

	if res.ExitCode == 0 && strings.Contains(res.Stdout, grantedMarker) {
		return &PermissionStatus{Granted: true}, nil
	}

	status := &PermissionStatus{
		Error: statusErrorText(res.Stdout, res.Stderr),
	}
	if _, ok := permission.Classify(res.Stdout, res.Stderr, "", string(domain)); ok {
		status.RequiresUserAction = true
	}
	return status, nil
}

func statusErrorText(stdout, stderr string) string {
	if m := strings.TrimSpace(stderr); m != "" {
		return m
	}
	return strings.TrimSpace(stdout)
}
