package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/envelope"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/permission"
)

func newEventsCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage calendar events",
	}

	cmd.AddCommand(
		newEventsListCmd(deps),
		newEventsCreateCmd(deps),
		newEventsUpdateCmd(deps),
		newEventsDeleteCmd(deps),
	)

	return cmd
}

func newEventsListCmd(deps *Dependencies) *cobra.Command {
	var calendar, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{}
			if calendar != "" {
				fields["calendar"] = calendar
			}
			if from != "" {
				fields["startDate"] = from
			}
			if to != "" {
				fields["endDate"] = to
			}

			dec, err := runAction(cmd, deps, permission.ActionListCalendarEvents, fields)
			if err != nil {
				return err
			}

			var payload eventsPayload
			if err := envelope.As(dec, &payload); err != nil {
				return fmt.Errorf("unexpected helper payload: %w", err)
			}

			if len(payload.Events) == 0 {
				cmd.Println(dimStyle.Render("no events"))
				return nil
			}
			for _, e := range payload.Events {
				cmd.Println(renderEvent(e))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&calendar, "calendar", "", "Only show events from this calendar")
	cmd.Flags().StringVar(&from, "from", "", "Range start, e.g. 2026-09-01")
	cmd.Flags().StringVar(&to, "to", "", "Range end")

	return cmd
}

func newEventsCreateCmd(deps *Dependencies) *cobra.Command {
	var calendar, start, end, location, notes string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{"title": args[0]}
			if calendar != "" {
				fields["calendar"] = calendar
			}
			if start != "" {
				fields["startDate"] = start
			}
			if end != "" {
				fields["endDate"] = end
			}
			if location != "" {
				fields["location"] = location
			}
			if notes != "" {
				fields["notes"] = notes
			}

			dec, err := runAction(cmd, deps, permission.ActionCreateCalendarEvent, fields)
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

	cmd.Flags().StringVar(&calendar, "calendar", "", "Target calendar")
	cmd.Flags().StringVar(&start, "start", "", "Event start, e.g. 2026-09-01 09:00")
	cmd.Flags().StringVar(&end, "end", "", "Event end")
	cmd.Flags().StringVar(&location, "location", "", "Event location")
	cmd.Flags().StringVar(&notes, "notes", "", "Event notes")

	return cmd
}

func newEventsUpdateCmd(deps *Dependencies) *cobra.Command {
	var title, start, end, location string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{"id": args[0]}
			if title != "" {
				fields["title"] = title
			}
			if start != "" {
				fields["startDate"] = start
			}
			if end != "" {
				fields["endDate"] = end
			}
			if location != "" {
				fields["location"] = location
			}

			if _, err := runAction(cmd, deps, permission.ActionUpdateCalendarEvent, fields); err != nil {
				return err
			}
			cmd.Println("updated", dimStyle.Render(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&start, "start", "", "New start")
	cmd.Flags().StringVar(&end, "end", "", "New end")
	cmd.Flags().StringVar(&location, "location", "", "New location")

	return cmd
}

func newEventsDeleteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{"id": args[0]}
			if _, err := runAction(cmd, deps, permission.ActionDeleteCalendarEvent, fields); err != nil {
				return err
			}
			cmd.Println("deleted", dimStyle.Render(args[0]))
			return nil
		},
	}
}
