package models

// Frequency classifies how often a task repeats.
type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Task is a to-do item, optionally scheduled and optionally belonging to a
// task list. Date is "YYYY-MM-DD" and Time "HH:MM" in the device's local
// zone; both may be empty for undated tasks.
type Task struct {
	Record

	Title                 string    `json:"title"`
	Description           string    `json:"description,omitempty"`
	Date                  string    `json:"date,omitempty"`
	Time                  string    `json:"time,omitempty"`
	Frequency             Frequency `json:"frequency"`
	Completed             bool      `json:"completed"`
	Starred               bool      `json:"starred"`
	ReminderEnabled       bool      `json:"reminderEnabled"`
	ReminderOffsetMinutes int       `json:"reminderOffsetMinutes,omitempty"`
	ListID                *int64    `json:"listId,omitempty"`
	ListOrder             int       `json:"listOrder"`
}

// TaskPatch describes a partial task update; nil fields are left unchanged.
type TaskPatch struct {
	Title                 *string
	Description           *string
	Date                  *string
	Time                  *string
	Frequency             *Frequency
	Completed             *bool
	Starred               *bool
	ReminderEnabled       *bool
	ReminderOffsetMinutes *int
	ListID                **int64
	ListOrder             *int
}

// Apply overlays the patch onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.Frequency != nil {
		t.Frequency = *p.Frequency
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Starred != nil {
		t.Starred = *p.Starred
	}
	if p.ReminderEnabled != nil {
		t.ReminderEnabled = *p.ReminderEnabled
	}
	if p.ReminderOffsetMinutes != nil {
		t.ReminderOffsetMinutes = *p.ReminderOffsetMinutes
	}
	if p.ListID != nil {
		t.ListID = *p.ListID
	}
	if p.ListOrder != nil {
		t.ListOrder = *p.ListOrder
	}
}
