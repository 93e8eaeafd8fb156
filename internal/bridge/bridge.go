// Package bridge coordinates helper binary invocations: resolve, execute,
// decode, and recover from macOS permission denials by provoking the native
// consent dialog and retrying exactly once.
package bridge

import (
	"context"
	"sort"
	"time"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/binary"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/envelope"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/executor"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/permission"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/config"
)

// Bridge executes helper actions with bounded permission recovery.
type Bridge struct {
	resolver binaryResolver
	executor commandExecutor
	consent  consentTrigger
	config   *config.Config
}

// New creates a Bridge with injected dependencies.
func New(resolver binaryResolver, exec commandExecutor, consent consentTrigger, cfg *config.Config) *Bridge {
	if cfg == nil {
		panic("cfg is required")
	}
	return &Bridge{
		resolver: resolver,
		executor: exec,
		consent:  consent,
		config:   cfg,
	}
}

// ResolverConfig builds the binary resolver configuration from config,
// applying candidate and allowlist overrides over the built-in defaults.
func ResolverConfig(cfg *config.Config) binary.Config {
	binCfg := binary.DefaultConfig()
	if len(cfg.Bridge.BinaryCandidates) > 0 {
		binCfg.Candidates = cfg.Bridge.BinaryCandidates
	}
	if len(cfg.Bridge.AllowedPrefixes) > 0 {
		binCfg.AllowedPrefixes = cfg.Bridge.AllowedPrefixes
	}
	return binCfg
}

// NewDefault wires a production Bridge from config: filesystem binary
// resolution, os/exec execution, and osascript consent prompts.
func NewDefault(cfg *config.Config) *Bridge {
	exec := executor.NewOSCommandExecutor(cfg)
	consentTimeout := time.Duration(cfg.Bridge.ConsentTimeoutSeconds) * time.Second

	return New(
		binary.NewResolver(ResolverConfig(cfg)),
		exec,
		permission.NewTrigger(exec, consentTimeout),
		cfg,
	)
}

// Execute runs the helper action with the given fields and returns its
// decoded envelope. A declared helper failure is returned as a Decoded with
// OK() == false; errors cover everything that never produced a clean
// envelope: resolution failures, spawn failures, timeouts, undecodable
// output, and a permission denial that survived the consent retry
// (*PermissionDeniedError).
//
// Per call the helper runs at most twice and the consent dialog is
// triggered at most once, by construction: the second attempt's outcome is
// final whatever its classification.
func (b *Bridge) Execute(ctx context.Context, action string, fields map[string]string) (*envelope.Decoded, error) {
	path, err := b.resolver.Resolve()
	if err != nil {
		// A missing binary will not appear after a consent prompt.
		return nil, err
	}

	args := buildArgs(action, fields)
	timeout := time.Duration(b.config.Bridge.ExecTimeoutSeconds) * time.Second

	dec, permFail, err := b.attempt(ctx, path, args, action, timeout)
	if err != nil {
		return nil, err
	}
	if permFail == nil {
		return dec, nil
	}

	// The probe blocks until the user answers the dialog. Its own failure
	// does not abort the retry: the second attempt is already bounded and
	// reports the definitive outcome either way.
	_ = b.consent.Request(ctx, permFail.Domain)

	dec, permFail, err = b.attempt(ctx, path, args, action, timeout)
	if err != nil {
		return nil, err
	}
	if permFail != nil {
		return nil, &PermissionDeniedError{Domain: permFail.Domain, RawMessage: permFail.RawMessage}
	}
	return dec, nil
}

// attempt performs one execute-decode-classify pass.
//
// Exactly one of the three returns is meaningful: a decoded envelope (which
// may declare a non-permission failure), a classified permission failure,
// or an error. Spawn failures and timeouts are never classified.
func (b *Bridge) attempt(ctx context.Context, path string, args []string, action string, timeout time.Duration) (*envelope.Decoded, *permission.Failure, error) {
	res, err := b.executor.Run(ctx, path, args, timeout)
	if err != nil {
		return nil, nil, err
	}

	dec, decErr := envelope.Decode(res.Stdout)
	if decErr != nil {
		// Some denial paths never reach a structured error, so raw
		// undecodable output is still classified.
		if fail, ok := permission.Classify(res.Stdout, res.Stderr, "", action); ok {
			return nil, fail, nil
		}
		return nil, nil, decErr
	}

	if dec.OK() {
		return dec, nil, nil
	}

	if fail, ok := permission.Classify(res.Stdout, res.Stderr, dec.Message, action); ok {
		return nil, fail, nil
	}
	return dec, nil, nil
}

// buildArgs assembles the helper argument vector: --action <name> followed
// by --<field> <value> pairs in sorted field order for determinism.
func buildArgs(action string, fields map[string]string) []string {
	args := []string{"--action", action}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		args = append(args, "--"+k, fields[k])
	}
	return args
}
