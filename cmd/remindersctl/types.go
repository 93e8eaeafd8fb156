package main

// Typed views over helper result payloads, decoded via envelope.As.

type Reminder struct {
	ID        string `mapstructure:"id"`
	Title     string `mapstructure:"title"`
	List      string `mapstructure:"list"`
	DueDate   string `mapstructure:"dueDate"`
	Notes     string `mapstructure:"notes"`
	Completed bool   `mapstructure:"completed"`
}

type ReminderList struct {
	ID    string `mapstructure:"id"`
	Title string `mapstructure:"title"`
}

type CalendarEvent struct {
	ID        string `mapstructure:"id"`
	Title     string `mapstructure:"title"`
	Calendar  string `mapstructure:"calendar"`
	StartDate string `mapstructure:"startDate"`
	EndDate   string `mapstructure:"endDate"`
	Location  string `mapstructure:"location"`
}

type remindersPayload struct {
	Reminders []Reminder `mapstructure:"reminders"`
}

type listsPayload struct {
	Lists []ReminderList `mapstructure:"lists"`
}

type eventsPayload struct {
	Events []CalendarEvent `mapstructure:"events"`
}

type idPayload struct {
	ID string `mapstructure:"id"`
}
