package models

import (
	"sort"
	"strings"
)

// Read-side projections over the current record set. These are pure: they
// never mutate their input beyond copying, and they carry no state of their
// own.

// ActiveNotes returns the non-archived notes, in input order.
func ActiveNotes(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if !n.IsArchived {
			out = append(out, n)
		}
	}
	return out
}

// ArchivedNotes returns the archived notes, in input order.
func ArchivedNotes(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.IsArchived {
			out = append(out, n)
		}
	}
	return out
}

// PinnedNotes returns the pinned, non-archived notes.
func PinnedNotes(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range ActiveNotes(notes) {
		if n.IsPinned {
			out = append(out, n)
		}
	}
	return out
}

// UnpinnedNotes returns the unpinned, non-archived notes.
func UnpinnedNotes(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range ActiveNotes(notes) {
		if !n.IsPinned {
			out = append(out, n)
		}
	}
	return out
}

// TodayTasks returns tasks dated exactly today ("YYYY-MM-DD").
func TodayTasks(tasks []Task, today string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Date == today {
			out = append(out, t)
		}
	}
	return out
}

// UpcomingTasks returns incomplete tasks dated after today.
func UpcomingTasks(tasks []Task, today string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Date != "" && t.Date > today && !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// CompletedTasks returns the completed tasks.
func CompletedTasks(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// IncompleteTasks returns the not-yet-completed tasks.
func IncompleteTasks(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// SortTasksByDate returns a copy sorted by date ascending; undated tasks go
// last. The sort is stable so same-day tasks keep their relative order.
func SortTasksByDate(tasks []Task) []Task {
	out := append([]Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date == "" {
			return false
		}
		if out[j].Date == "" {
			return true
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// SortTasksByName returns a copy sorted by case-insensitive title.
func SortTasksByName(tasks []Task) []Task {
	out := append([]Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out
}
