package models

import "time"

// Note mirrors the client's wire payload for a note. The JSON tags are the
// wire contract; timestamps travel as RFC 3339 strings. There is no PIN
// hash column anywhere on the server.
type Note struct {
	ID         string    `json:"id"`
	OwnerKey   string    `json:"owner_key"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Color      string    `json:"color,omitempty"`
	IsPinned   bool      `json:"is_pinned"`
	IsArchived bool      `json:"is_archived"`
	IsLocked   bool      `json:"is_locked"`
	Labels     []string  `json:"labels"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	IsDeleted  bool      `json:"is_deleted"`
}

// Task mirrors the client's wire payload for a task.
type Task struct {
	ID                    string    `json:"id"`
	OwnerKey              string    `json:"owner_key"`
	Title                 string    `json:"title"`
	Description           string    `json:"description,omitempty"`
	Date                  string    `json:"date,omitempty"`
	Time                  string    `json:"time,omitempty"`
	Frequency             string    `json:"frequency"`
	Completed             bool      `json:"completed"`
	Starred               bool      `json:"starred"`
	ReminderEnabled       bool      `json:"reminder_enabled"`
	ReminderOffsetMinutes int       `json:"reminder_offset_minutes"`
	ListID                *int64    `json:"list_id,omitempty"`
	ListOrder             int       `json:"list_order"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	IsDeleted             bool      `json:"is_deleted"`
}
