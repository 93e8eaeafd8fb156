package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/envelope"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/permission"
)

// runAction executes a helper action and fails on a declared helper error.
func runAction(cmd *cobra.Command, deps *Dependencies, action string, fields map[string]string) (*envelope.Decoded, error) {
	dec, err := deps.Bridge.Execute(cmd.Context(), action, fields)
	if err != nil {
		return nil, err
	}
	if !dec.OK() {
		return nil, errors.New(dec.Message)
	}
	return dec, nil
}

func newListCmd(deps *Dependencies) *cobra.Command {
	var list string
	var showCompleted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{}
			if list != "" {
				fields["list"] = list
			}
			if showCompleted {
				fields["completed"] = "true"
			}

			dec, err := runAction(cmd, deps, permission.ActionListReminders, fields)
			if err != nil {
				return err
			}

			var payload remindersPayload
			if err := envelope.As(dec, &payload); err != nil {
				return fmt.Errorf("unexpected helper payload: %w", err)
			}

			if len(payload.Reminders) == 0 {
				cmd.Println(dimStyle.Render("no reminders"))
				return nil
			}
			for _, r := range payload.Reminders {
				cmd.Println(renderReminder(r))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&list, "list", "", "Only show reminders from this list")
	cmd.Flags().BoolVar(&showCompleted, "completed", false, "Include completed reminders")

	return cmd
}

func newCreateCmd(deps *Dependencies) *cobra.Command {
	var list, due, notes string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{"title": args[0]}
			if list != "" {
				fields["list"] = list
			}
			if due != "" {
				fields["dueDate"] = due
			}
			if notes != "" {
				fields["notes"] = notes
			}

			dec, err := runAction(cmd, deps, permission.ActionCreateReminder, fields)
			if err != nil {
				return err
			}

			var payload idPayload
			if err := envelope.As(dec, &payload); err != nil {
				return fmt.Errorf("unexpected helper payload: %w", err)
			}
			cmd.Printf("created %s %s\n", titleStyle.Render(args[0]), dimStyle.Render("(id: "+payload.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&list, "list", "", "Target reminder list")
	cmd.Flags().StringVar(&due, "due", "", "Due date, e.g. 2026-09-01 09:00")
	cmd.Flags().StringVar(&notes, "notes", "", "Reminder notes")

	return cmd
}

func newUpdateCmd(deps *Dependencies) *cobra.Command {
	var title, due, notes string
	var completed bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{"id": args[0]}
			if title != "" {
				fields["title"] = title
			}
			if due != "" {
				fields["dueDate"] = due
			}
			if notes != "" {
				fields["notes"] = notes
			}
			if cmd.Flags().Changed("done") {
				fields["completed"] = strconv.FormatBool(completed)
			}

			if _, err := runAction(cmd, deps, permission.ActionUpdateReminder, fields); err != nil {
				return err
			}
			cmd.Println("updated", dimStyle.Render(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&due, "due", "", "New due date")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	cmd.Flags().BoolVar(&completed, "done", false, "Mark completed (or --done=false to reopen)")

	return cmd
}

func newDeleteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{"id": args[0]}
			if _, err := runAction(cmd, deps, permission.ActionDeleteReminder, fields); err != nil {
				return err
			}
			cmd.Println("deleted", dimStyle.Render(args[0]))
			return nil
		},
	}
}

func newListsCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show reminder lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, err := runAction(cmd, deps, permission.ActionListReminderLists, nil)
			if err != nil {
				return err
			}

			var payload listsPayload
			if err := envelope.As(dec, &payload); err != nil {
				return fmt.Errorf("unexpected helper payload: %w", err)
			}
			for _, l := range payload.Lists {
				cmd.Printf("%s %s\n", titleStyle.Render(l.Title), dimStyle.Render("(id: "+l.ID+")"))
			}
			return nil
		},
	}
}
