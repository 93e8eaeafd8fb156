package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	grantedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	deniedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func renderError(err error) string {
	return errorStyle.Render("error: ") + err.Error()
}

func renderReminder(r Reminder) string {
	var b strings.Builder

	check := "[ ]"
	if r.Completed {
		check = grantedStyle.Render("[x]")
	}
	fmt.Fprintf(&b, "%s %s", check, titleStyle.Render(r.Title))
	if r.List != "" {
		fmt.Fprintf(&b, " %s", dimStyle.Render("("+r.List+")"))
	}
	if r.DueDate != "" {
		fmt.Fprintf(&b, " %s", dimStyle.Render("due "+r.DueDate))
	}
	if r.ID != "" {
		fmt.Fprintf(&b, "\n    %s", dimStyle.Render("id: "+r.ID))
	}
	if r.Notes != "" {
		fmt.Fprintf(&b, "\n    %s", r.Notes)
	}
	return b.String()
}

func renderEvent(e CalendarEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s", titleStyle.Render(e.Title))
	if e.Calendar != "" {
		fmt.Fprintf(&b, " %s", dimStyle.Render("("+e.Calendar+")"))
	}
	if e.StartDate != "" {
		fmt.Fprintf(&b, "\n    %s", dimStyle.Render(e.StartDate+" - "+e.EndDate))
	}
	if e.Location != "" {
		fmt.Fprintf(&b, "\n    %s", e.Location)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, "\n    %s", dimStyle.Render("id: "+e.ID))
	}
	return b.String()
}

func renderGrant(domain string, granted, requiresUserAction bool, errText string) string {
	label := titleStyle.Render(domain + ":")
	if granted {
		return fmt.Sprintf("%s %s", label, grantedStyle.Render("granted"))
	}

	line := fmt.Sprintf("%s %s", label, deniedStyle.Render("not granted"))
	if requiresUserAction {
		line += "\n    " + dimStyle.Render("grant access under System Settings > Privacy & Security")
	}
	if errText != "" {
		line += "\n    " + dimStyle.Render(errText)
	}
	return line
}
