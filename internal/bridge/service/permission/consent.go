package permission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/executor"
)

const osascriptPath = "/usr/bin/osascript"

// consentScripts are minimal AppleScript probes whose only side effect is
// that the OS intercepts them with its native consent dialog when access
// has not yet been granted. With access granted they succeed trivially.
var consentScripts = map[Domain]string{
	DomainReminders: `tell application "Reminders" to count of lists`,
	DomainCalendars: `tell application "Calendar" to count of calendars`,
}

// commandExecutor runs a binary with captured output and a timeout.
type commandExecutor interface {
	Run(ctx context.Context, path string, args []string, timeout time.Duration) (*executor.Result, error)
}

// Trigger surfaces the macOS consent dialog for a permission domain.
//
// The osascript call blocks until the user answers the dialog, so the
// trigger carries its own timeout, independent of the helper execution
// timeout.
type Trigger struct {
	executor commandExecutor
	timeout  time.Duration
}

// NewTrigger creates a Trigger using the given executor and timeout.
func NewTrigger(exec commandExecutor, timeout time.Duration) *Trigger {
	return &Trigger{executor: exec, timeout: timeout}
}

// Request provokes the consent dialog for domain. A nil return means the
// probe ran to completion (access was already granted, or the user granted
// it); any failure is wrapped as a *TriggerError, never swallowed.
func (t *Trigger) Request(ctx context.Context, domain Domain) error {
	script, ok := consentScripts[domain]
	if !ok {
		return &TriggerError{Domain: domain, Cause: fmt.Errorf("no consent probe for domain %q", domain)}
	}

	res, err := t.executor.Run(ctx, osascriptPath, []string{"-e", script}, t.timeout)
	if err != nil {
		return &TriggerError{Domain: domain, Cause: err}
	}
	if res.ExitCode != 0 {
		return &TriggerError{Domain: domain, Output: strings.TrimSpace(res.Stderr)}
	}

	return nil
}
