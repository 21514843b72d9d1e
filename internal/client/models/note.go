package models

// Note is a rich-text note. LockPINHash protects a locked note and stays on
// the device: it is excluded from every gateway payload.
type Note struct {
	Record

	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Color       string   `json:"color,omitempty"`
	IsPinned    bool     `json:"isPinned"`
	IsArchived  bool     `json:"isArchived"`
	IsLocked    bool     `json:"isLocked"`
	LockPINHash string   `json:"lockPinHash,omitempty"`
	Labels      []string `json:"labels"`
}

// NotePatch describes a partial note update; nil fields are left unchanged.
type NotePatch struct {
	Title       *string
	Content     *string
	Color       *string
	IsPinned    *bool
	IsArchived  *bool
	IsLocked    *bool
	LockPINHash *string
	Labels      *[]string
}

// Apply overlays the patch onto n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	if p.IsArchived != nil {
		n.IsArchived = *p.IsArchived
	}
	if p.IsLocked != nil {
		n.IsLocked = *p.IsLocked
	}
	if p.LockPINHash != nil {
		n.LockPINHash = *p.LockPINHash
	}
	if p.Labels != nil {
		n.Labels = *p.Labels
	}
}
