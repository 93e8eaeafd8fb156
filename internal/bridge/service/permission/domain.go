// Package permission classifies helper failures as macOS permission denials
// and provokes the native consent dialog for a permission domain.
package permission

// Domain is a macOS protected-data domain the helper may need access to.
// The OS grants or denies each domain independently.
type Domain string

const (
	DomainReminders Domain = "reminders"
	DomainCalendars Domain = "calendars"
)

// Helper action names. The calendar-event actions are the only ones backed
// by the Calendars domain; everything else touches Reminders.
const (
	ActionListReminders     = "list_reminders"
	ActionCreateReminder    = "create_reminder"
	ActionUpdateReminder    = "update_reminder"
	ActionDeleteReminder    = "delete_reminder"
	ActionListReminderLists = "list_reminder_lists"

	ActionListCalendarEvents  = "list_calendar_events"
	ActionCreateCalendarEvent = "create_calendar_event"
	ActionUpdateCalendarEvent = "update_calendar_event"
	ActionDeleteCalendarEvent = "delete_calendar_event"
)

var calendarActions = map[string]bool{
	ActionListCalendarEvents:  true,
	ActionCreateCalendarEvent: true,
	ActionUpdateCalendarEvent: true,
	ActionDeleteCalendarEvent: true,
}

// DomainForAction maps an action name to the permission domain it needs.
// The mapping is total: unknown actions fall back to Reminders.
func DomainForAction(action string) Domain {
	if calendarActions[action] {
		return DomainCalendars
	}
	return DomainReminders
}
