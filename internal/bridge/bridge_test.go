package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/binary"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/envelope"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/executor"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/permission"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/config"
)

// mockResolver returns a fixed path and counts calls.
type mockResolver struct {
	path  string
	err   error
	calls int
}

func (m *mockResolver) Resolve() (string, error) {
	m.calls++
	return m.path, m.err
}

// scriptedRun is one prearranged executor outcome.
type scriptedRun struct {
	result *executor.Result
	err    error
}

// mockCommandExecutor plays back outcomes in order and records every call.
type mockCommandExecutor struct {
	script []scriptedRun
	calls  [][]string
}

func (m *mockCommandExecutor) Run(ctx context.Context, path string, args []string, timeout time.Duration) (*executor.Result, error) {
	m.calls = append(m.calls, args)
	n := len(m.calls)
	if n > len(m.script) {
		panic("mockCommandExecutor: more executions than scripted")
	}
	run := m.script[n-1]
	return run.result, run.err
}

// mockConsent records trigger invocations.
type mockConsent struct {
	domains []permission.Domain
	err     error
}

func (m *mockConsent) Request(ctx context.Context, domain permission.Domain) error {
	m.domains = append(m.domains, domain)
	return m.err
}

func newTestBridge(script []scriptedRun, consent *mockConsent) (*Bridge, *mockCommandExecutor) {
	exec := &mockCommandExecutor{script: script}
	b := New(&mockResolver{path: binary.MockPath}, exec, consent, config.DefaultConfig())
	return b, exec
}

func completed(exitCode int, stdout, stderr string) scriptedRun {
	return scriptedRun{result: &executor.Result{ExitCode: exitCode, Stdout: stdout, Stderr: stderr}}
}

func TestExecute_Success_NoConsentTrigger(t *testing.T) {
	consent := &mockConsent{}
	b, exec := newTestBridge([]scriptedRun{
		completed(0, `{"status":"success","result":{"id":"42"}}`, ""),
	}, consent)

	dec, err := b.Execute(context.Background(), permission.ActionCreateReminder, map[string]string{"title": "Buy milk"})

	require.NoError(t, err)
	assert.True(t, dec.OK())

	var payload struct {
		ID string `mapstructure:"id"`
	}
	require.NoError(t, envelope.As(dec, &payload))
	assert.Equal(t, "42", payload.ID)

	assert.Empty(t, consent.domains, "success must not trigger the consent prompt")
	assert.Len(t, exec.calls, 1)
}

func TestExecute_ArgumentVector(t *testing.T) {
	b, exec := newTestBridge([]scriptedRun{
		completed(0, `{"status":"success","result":null}`, ""),
	}, &mockConsent{})

	_, err := b.Execute(context.Background(), permission.ActionCreateReminder, map[string]string{
		"title": "Buy milk",
		"list":  "Groceries",
	})

	require.NoError(t, err)
	require.Len(t, exec.calls, 1)
	// --action first, then fields in sorted key order.
	assert.Equal(t, []string{"--action", "create_reminder", "--list", "Groceries", "--title", "Buy milk"}, exec.calls[0])
}

func TestExecute_PermissionDenied_RecoversAfterConsent(t *testing.T) {
	consent := &mockConsent{}
	b, exec := newTestBridge([]scriptedRun{
		completed(1, `{"status":"error","message":"Permission denied by user"}`, ""),
		completed(0, `{"status":"success","result":{"id":"7"}}`, ""),
	}, consent)

	dec, err := b.Execute(context.Background(), permission.ActionCreateCalendarEvent, map[string]string{"title": "Standup"})

	require.NoError(t, err)
	assert.True(t, dec.OK())
	assert.Equal(t, []permission.Domain{permission.DomainCalendars}, consent.domains)
	assert.Len(t, exec.calls, 2)
}

func TestExecute_PermissionDeniedTwice_FinalTypedError(t *testing.T) {
	consent := &mockConsent{}
	b, exec := newTestBridge([]scriptedRun{
		completed(1, `{"status":"error","message":"Permission denied by user"}`, ""),
		completed(1, `{"status":"error","message":"Permission denied by user"}`, ""),
	}, consent)

	_, err := b.Execute(context.Background(), permission.ActionListCalendarEvents, nil)

	var denied *PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, permission.DomainCalendars, denied.Domain)
	assert.Equal(t, "Permission denied by user", denied.RawMessage)

	// Exactly one consent trigger, exactly two executions, never a loop.
	assert.Len(t, consent.domains, 1)
	assert.Len(t, exec.calls, 2)
}

func TestExecute_DeclaredNonPermissionFailure_NoRetry(t *testing.T) {
	consent := &mockConsent{}
	b, exec := newTestBridge([]scriptedRun{
		completed(1, `{"status":"error","message":"list not found: Chores"}`, ""),
	}, consent)

	dec, err := b.Execute(context.Background(), permission.ActionListReminders, map[string]string{"list": "Chores"})

	// A declared failure is returned to the caller verbatim, not an error.
	require.NoError(t, err)
	assert.False(t, dec.OK())
	assert.Equal(t, "list not found: Chores", dec.Message)

	assert.Empty(t, consent.domains)
	assert.Len(t, exec.calls, 1)
}

func TestExecute_UndecodableOutput_NoPermissionSignature(t *testing.T) {
	consent := &mockConsent{}
	b, exec := newTestBridge([]scriptedRun{
		completed(139, "", "Segmentation fault"),
	}, consent)

	_, err := b.Execute(context.Background(), permission.ActionListReminders, nil)

	var decodeErr *envelope.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Empty(t, consent.domains)
	assert.Len(t, exec.calls, 1)
}

func TestExecute_UndecodableOutput_WithPermissionSignature_Retries(t *testing.T) {
	// Some denial paths never produce a clean envelope: raw stderr text is
	// still classified and recovered from.
	consent := &mockConsent{}
	b, exec := newTestBridge([]scriptedRun{
		completed(1, "", "EventKit error: not authorized"),
		completed(0, `{"status":"success","result":null}`, ""),
	}, consent)

	dec, err := b.Execute(context.Background(), permission.ActionListReminders, nil)

	require.NoError(t, err)
	assert.True(t, dec.OK())
	assert.Equal(t, []permission.Domain{permission.DomainReminders}, consent.domains)
	assert.Len(t, exec.calls, 2)
}

func TestExecute_Timeout_NeverClassifiedOrRetried(t *testing.T) {
	consent := &mockConsent{}
	b, exec := newTestBridge([]scriptedRun{
		{result: &executor.Result{ExitCode: -1, Stderr: "permission related text that must be ignored"}, err: executor.ErrTimeout},
	}, consent)

	_, err := b.Execute(context.Background(), permission.ActionListReminders, nil)

	assert.ErrorIs(t, err, executor.ErrTimeout)
	assert.Empty(t, consent.domains)
	assert.Len(t, exec.calls, 1)
}

func TestExecute_SpawnFailure_SurfacedImmediately(t *testing.T) {
	consent := &mockConsent{}
	spawnErr := &executor.SpawnError{Path: binary.MockPath, Cause: errors.New("no such file")}
	b, exec := newTestBridge([]scriptedRun{{err: spawnErr}}, consent)

	_, err := b.Execute(context.Background(), permission.ActionListReminders, nil)

	var got *executor.SpawnError
	require.ErrorAs(t, err, &got)
	assert.Empty(t, consent.domains)
	assert.Len(t, exec.calls, 1)
}

func TestExecute_ResolverFailure_NoExecution(t *testing.T) {
	notFound := &binary.NotFoundError{Attempted: []string{"/app/reminders-bridge"}}
	exec := &mockCommandExecutor{}
	consent := &mockConsent{}
	b := New(&mockResolver{err: notFound}, exec, consent, config.DefaultConfig())

	_, err := b.Execute(context.Background(), permission.ActionListReminders, nil)

	var got *binary.NotFoundError
	require.ErrorAs(t, err, &got)
	assert.Empty(t, exec.calls, "a missing binary must not be executed or retried")
	assert.Empty(t, consent.domains)
}

func TestExecute_ConsentTriggerFailure_SecondAttemptStillRuns(t *testing.T) {
	consent := &mockConsent{err: &permission.TriggerError{Domain: permission.DomainReminders, Output: "dialog dismissed"}}
	b, exec := newTestBridge([]scriptedRun{
		completed(1, `{"status":"error","message":"permission denied"}`, ""),
		completed(0, `{"status":"success","result":null}`, ""),
	}, consent)

	dec, err := b.Execute(context.Background(), permission.ActionListReminders, nil)

	require.NoError(t, err)
	assert.True(t, dec.OK())
	assert.Len(t, consent.domains, 1)
	assert.Len(t, exec.calls, 2)
}

func TestExecute_SecondAttemptTimeout_Surfaced(t *testing.T) {
	consent := &mockConsent{}
	b, exec := newTestBridge([]scriptedRun{
		completed(1, `{"status":"error","message":"permission denied"}`, ""),
		{err: executor.ErrTimeout},
	}, consent)

	_, err := b.Execute(context.Background(), permission.ActionListReminders, nil)

	assert.ErrorIs(t, err, executor.ErrTimeout)
	assert.Len(t, consent.domains, 1)
	assert.Len(t, exec.calls, 2)
}

func TestResolverConfig(t *testing.T) {
	t.Run("DefaultsWithoutOverrides", func(t *testing.T) {
		cfg := config.DefaultConfig()

		got := ResolverConfig(cfg)
		def := binary.DefaultConfig()

		assert.Equal(t, def.Candidates, got.Candidates)
		assert.Equal(t, def.AllowedPrefixes, got.AllowedPrefixes)
	})

	t.Run("OverridesReplaceDefaults", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Bridge.BinaryCandidates = []string{"/opt/reminders/libexec/reminders-bridge"}
		cfg.Bridge.AllowedPrefixes = []string{"/opt/reminders/libexec"}

		got := ResolverConfig(cfg)

		assert.Equal(t, cfg.Bridge.BinaryCandidates, got.Candidates)
		assert.Equal(t, cfg.Bridge.AllowedPrefixes, got.AllowedPrefixes)
	})
}
