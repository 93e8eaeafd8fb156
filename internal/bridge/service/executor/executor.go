// Package executor runs the helper binary as a child process with output
// capture and a wall-clock timeout.
package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/config"
)

// Result represents the outcome of a completed helper execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor implements helper execution using os/exec.
type OSCommandExecutor struct {
	config *config.Config
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// Run executes the binary at path with args passed as a discrete vector
// (never through a shell) and enforces a wall-clock timeout.
//
// A process that exits, with any exit code, yields a Result and a nil error.
// Run returns an error only when the process could not be started
// (*SpawnError), exceeded its timeout (ErrTimeout), or the context was
// cancelled; a timed-out run still returns whatever output was collected.
func (f *OSCommandExecutor) Run(ctx context.Context, path string, args []string, timeout time.Duration) (*Result, error) {
	if path == "" {
		return nil, os.ErrInvalid
	}

	// CommandContext's built-in kill is not used so the timeout path can
	// attempt a graceful interrupt first.
	cmd := exec.Command(path, args...)
	cmd.Stdin = nil

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &SpawnError{Path: path, Cause: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &SpawnError{Path: path, Cause: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Path: path, Cause: err}
	}

	// Drain pipes concurrently so a child that fills its pipe buffer before
	// exiting cannot deadlock the Wait below.
	var stdoutStr, stderrStr string
	var truncated bool
	collectDone := make(chan struct{})
	go func() {
		stdoutStr, stderrStr, truncated = f.collectOutput(stdoutPipe, stderrPipe)
		close(collectDone)
	}()

	done := make(chan error, 1)
	go func() {
		// Wait closes the pipes on process exit, discarding anything still
		// buffered in them; it must not run until both drains hit EOF.
		<-collectDone
		done <- cmd.Wait()
	}()

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		execErr = ctx.Err()
	case <-time.After(timeout):
		// Try graceful shutdown
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
			execErr = ErrTimeout
		case <-time.After(time.Duration(f.config.Bridge.GracefulShutdownMs) * time.Millisecond):
			_ = cmd.Process.Kill()
			execErr = ErrTimeout
		}
	}

	// Output collection finishes once the pipes close on exit or kill.
	<-collectDone

	result := &Result{
		Stdout:    stdoutStr,
		Stderr:    stderrStr,
		Truncated: truncated,
	}

	if execErr != nil {
		var exitErr *exec.ExitError
		if errors.As(execErr, &exitErr) {
			// Non-zero exit is a completed execution, not an error: the
			// helper reports its failures through the stdout envelope.
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		result.ExitCode = -1
		if errors.Is(execErr, ErrTimeout) || errors.Is(execErr, context.Canceled) || errors.Is(execErr, context.DeadlineExceeded) {
			return result, execErr
		}
		return result, &SpawnError{Path: path, Cause: execErr}
	}

	return result, nil
}

func (f *OSCommandExecutor) collectOutput(stdout, stderr io.Reader) (string, string, bool) {
	maxBytes := int(f.config.Bridge.MaxOutputSize)

	stdoutCollector := newCollector(maxBytes)
	stderrCollector := newCollector(maxBytes)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, _ = io.Copy(stdoutCollector, stdout)
	}()

	go func() {
		defer wg.Done()
		_, _ = io.Copy(stderrCollector, stderr)
	}()

	wg.Wait()

	truncated := stdoutCollector.Truncated() || stderrCollector.Truncated()
	return stdoutCollector.String(), stderrCollector.String(), truncated
}
