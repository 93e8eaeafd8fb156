// Package main provides the remindersctl command-line interface. It drives
// the native reminders helper binary for reminder and calendar operations
// and manages the macOS permission grants the helper depends on.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/binary"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/executor"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/permission"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/config"
)

// Dependencies holds the components required to run the CLI.
type Dependencies struct {
	Config  *config.Config
	Bridge  *bridge.Bridge
	Consent *permission.Trigger
}

func createDependencies() (*Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// One executor and one consent trigger serve both the bridge and the
	// standalone permissions commands.
	exec := executor.NewOSCommandExecutor(cfg)
	consent := permission.NewTrigger(exec, time.Duration(cfg.Bridge.ConsentTimeoutSeconds)*time.Second)
	resolver := binary.NewResolver(bridge.ResolverConfig(cfg))

	return &Dependencies{
		Config:  cfg,
		Bridge:  bridge.New(resolver, exec, consent, cfg),
		Consent: consent,
	}, nil
}

func newRootCmd(deps *Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "remindersctl",
		Short:         "Manage Apple Reminders and Calendar events from the terminal",
		Long:          "remindersctl drives the native reminders helper binary to create, list, update and delete reminders and calendar events, handling macOS permission prompts along the way.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newListCmd(deps),
		newCreateCmd(deps),
		newUpdateCmd(deps),
		newDeleteCmd(deps),
		newListsCmd(deps),
		newEventsCmd(deps),
		newPermissionsCmd(deps),
	)

	return root
}

func main() {
	deps, err := createDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}

	if err := newRootCmd(deps).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
