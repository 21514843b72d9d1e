// Package reminders decides when a task's reminder should fire and keeps a
// short journal of reminders already fired, so re-checking the schedule
// does not re-fire them.
package reminders

import (
	"time"

	"github.com/Anandrajbgp/Noteflow/internal/client/models"
)

// fireWindow is how long past its due moment a reminder is still
// considered fireable. Checks are periodic, so a reminder whose moment
// fell between two checks must still fire; one older than the window is
// stale and is dropped silently.
const fireWindow = 5 * time.Minute

// EventTime resolves the task's scheduled moment in loc. ok is false for
// undated or malformed schedules; a task with a date but no time resolves
// to the start of that day.
func EventTime(t *models.Task, loc *time.Location) (at time.Time, ok bool) {
	if t.Date == "" {
		return time.Time{}, false
	}
	layout := "2006-01-02"
	value := t.Date
	if t.Time != "" {
		layout = "2006-01-02 15:04"
		value = t.Date + " " + t.Time
	}
	at, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// RemindAt is the moment the reminder should fire: the event time minus
// the task's reminder offset. ok is false when reminders are off for the
// task or its schedule does not resolve.
func RemindAt(t *models.Task, loc *time.Location) (time.Time, bool) {
	if !t.ReminderEnabled {
		return time.Time{}, false
	}
	at, ok := EventTime(t, loc)
	if !ok {
		return time.Time{}, false
	}
	return at.Add(-time.Duration(t.ReminderOffsetMinutes) * time.Minute), true
}

// Due reports whether the reminder should fire now: its moment has passed
// but by less than the fire window. Completed tasks never fire.
func Due(t *models.Task, now time.Time, loc *time.Location) bool {
	if t.Completed {
		return false
	}
	at, ok := RemindAt(t, loc)
	if !ok {
		return false
	}
	since := now.Sub(at)
	return since >= 0 && since < fireWindow
}

// UntilDue returns the time remaining before the reminder fires, negative
// once it has passed. ok is false when the task has no resolvable reminder
// moment.
func UntilDue(t *models.Task, now time.Time, loc *time.Location) (time.Duration, bool) {
	at, ok := RemindAt(t, loc)
	if !ok {
		return 0, false
	}
	return at.Sub(now), true
}
