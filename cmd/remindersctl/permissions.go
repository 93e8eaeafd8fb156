package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/permission"
)

var allDomains = []permission.Domain{permission.DomainReminders, permission.DomainCalendars}

func parseDomain(s string) (permission.Domain, error) {
	switch permission.Domain(s) {
	case permission.DomainReminders, permission.DomainCalendars:
		return permission.Domain(s), nil
	}
	return "", fmt.Errorf("unknown domain %q (expected %q or %q)", s, permission.DomainReminders, permission.DomainCalendars)
}

func newPermissionsCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Inspect and request macOS permission grants",
	}

	cmd.AddCommand(
		newPermissionsStatusCmd(deps),
		newPermissionsRequestCmd(deps),
	)

	return cmd
}

func newPermissionsStatusCmd(deps *Dependencies) *cobra.Command {
	var domainFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show permission status per domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			domains := allDomains
			if domainFlag != "" {
				d, err := parseDomain(domainFlag)
				if err != nil {
					return err
				}
				domains = []permission.Domain{d}
			}

			for _, d := range domains {
				status, err := deps.Bridge.CheckPermissions(cmd.Context(), d)
				if err != nil {
					return err
				}
				cmd.Println(renderGrant(string(d), status.Granted, status.RequiresUserAction, status.Error))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domainFlag, "domain", "", "Check a single domain (reminders or calendars)")

	return cmd
}

func newPermissionsRequestCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "request <domain>",
		Short: "Trigger the macOS consent dialog for a domain",
		Long:  "Triggers the native macOS consent dialog for the given domain. Blocks until the user answers the dialog or the consent timeout elapses.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDomain(args[0])
			if err != nil {
				return err
			}
			if err := deps.Consent.Request(cmd.Context(), d); err != nil {
				return err
			}
			cmd.Println(renderGrant(string(d), true, false, ""))
			return nil
		},
	}
}
