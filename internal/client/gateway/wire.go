package gateway

import (
	"fmt"

	"github.com/Anandrajbgp/Noteflow/internal/client/models"
)

// NotePayload is the JSON shape of a note on the wire. It intentionally
// carries no lock PIN hash field; the hash stays on the device and is
// re-attached from local state when a remote copy is merged back.
type NotePayload struct {
	ID         string   `json:"id"`
	OwnerKey   string   `json:"owner_key"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Color      string   `json:"color,omitempty"`
	IsPinned   bool     `json:"is_pinned"`
	IsArchived bool     `json:"is_archived"`
	IsLocked   bool     `json:"is_locked"`
	Labels     []string `json:"labels"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	IsDeleted  bool     `json:"is_deleted"`
}

// TaskPayload is the JSON shape of a task on the wire.
type TaskPayload struct {
	ID                    string `json:"id"`
	OwnerKey              string `json:"owner_key"`
	Title                 string `json:"title"`
	Description           string `json:"description,omitempty"`
	Date                  string `json:"date,omitempty"`
	Time                  string `json:"time,omitempty"`
	Frequency             string `json:"frequency"`
	Completed             bool   `json:"completed"`
	Starred               bool   `json:"starred"`
	ReminderEnabled       bool   `json:"reminder_enabled"`
	ReminderOffsetMinutes int    `json:"reminder_offset_minutes"`
	ListID                *int64 `json:"list_id,omitempty"`
	ListOrder             int    `json:"list_order"`
	CreatedAt             string `json:"created_at"`
	UpdatedAt             string `json:"updated_at"`
	IsDeleted             bool   `json:"is_deleted"`
}

// NoteToPayload projects a local note onto the wire shape.
func NoteToPayload(n *models.Note) NotePayload {
	labels := n.Labels
	if labels == nil {
		labels = []string{}
	}
	return NotePayload{
		ID:         n.ID,
		OwnerKey:   n.OwnerKey,
		Title:      n.Title,
		Content:    n.Content,
		Color:      n.Color,
		IsPinned:   n.IsPinned,
		IsArchived: n.IsArchived,
		IsLocked:   n.IsLocked,
		Labels:     labels,
		CreatedAt:  models.FormatTime(n.CreatedAt),
		UpdatedAt:  models.FormatTime(n.UpdatedAt),
		IsDeleted:  n.IsDeleted,
	}
}

// NoteFromPayload builds a local note from its wire shape. LockPINHash is
// left empty; the caller restores it from the local copy if one exists.
func NoteFromPayload(p NotePayload) (*models.Note, error) {
	createdAt, err := models.ParseTime(p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("note %s: bad created_at: %w", p.ID, err)
	}
	updatedAt, err := models.ParseTime(p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("note %s: bad updated_at: %w", p.ID, err)
	}
	return &models.Note{
		Record: models.Record{
			ID:        p.ID,
			OwnerKey:  p.OwnerKey,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
			IsDeleted: p.IsDeleted,
		},
		Title:      p.Title,
		Content:    p.Content,
		Color:      p.Color,
		IsPinned:   p.IsPinned,
		IsArchived: p.IsArchived,
		IsLocked:   p.IsLocked,
		Labels:     p.Labels,
	}, nil
}

// TaskToPayload projects a local task onto the wire shape.
func TaskToPayload(t *models.Task) TaskPayload {
	return TaskPayload{
		ID:                    t.ID,
		OwnerKey:              t.OwnerKey,
		Title:                 t.Title,
		Description:           t.Description,
		Date:                  t.Date,
		Time:                  t.Time,
		Frequency:             string(t.Frequency),
		Completed:             t.Completed,
		Starred:               t.Starred,
		ReminderEnabled:       t.ReminderEnabled,
		ReminderOffsetMinutes: t.ReminderOffsetMinutes,
		ListID:                t.ListID,
		ListOrder:             t.ListOrder,
		CreatedAt:             models.FormatTime(t.CreatedAt),
		UpdatedAt:             models.FormatTime(t.UpdatedAt),
		IsDeleted:             t.IsDeleted,
	}
}

// TaskFromPayload builds a local task from its wire shape.
func TaskFromPayload(p TaskPayload) (*models.Task, error) {
	createdAt, err := models.ParseTime(p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("task %s: bad created_at: %w", p.ID, err)
	}
	updatedAt, err := models.ParseTime(p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("task %s: bad updated_at: %w", p.ID, err)
	}
	return &models.Task{
		Record: models.Record{
			ID:        p.ID,
			OwnerKey:  p.OwnerKey,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
			IsDeleted: p.IsDeleted,
		},
		Title:                 p.Title,
		Description:           p.Description,
		Date:                  p.Date,
		Time:                  p.Time,
		Frequency:             models.Frequency(p.Frequency),
		Completed:             p.Completed,
		Starred:               p.Starred,
		ReminderEnabled:       p.ReminderEnabled,
		ReminderOffsetMinutes: p.ReminderOffsetMinutes,
		ListID:                p.ListID,
		ListOrder:             p.ListOrder,
	}, nil
}
