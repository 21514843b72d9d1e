// Package models defines the record types kept in the local store: notes,
// tasks, and the sync metadata they share.
package models

import "time"

// Record holds the sync metadata common to every locally stored record.
// It is embedded by Note and Task.
//
// ID is assigned on the device at creation time and never changes; it is
// the key both locally and on the backend. UpdatedAt is the sole arbiter of
// merge precedence between a local and a remote copy.
type Record struct {
	ID        string    `json:"id"`
	OwnerKey  string    `json:"ownerKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// SyncedAt is the time of the last successful backend confirmation,
	// nil if the record was never synced.
	SyncedAt *time.Time `json:"syncedAt,omitempty"`

	// PendingSync is set whenever a local mutation has not yet been
	// confirmed uploaded.
	PendingSync bool `json:"pendingSync"`

	// IsDeleted marks a tombstone: hidden from normal queries but kept in
	// storage so the deletion propagates through sync.
	IsDeleted bool `json:"isDeleted"`
}

// Newer reports whether the record's UpdatedAt is strictly after other.
// Equal timestamps are not newer, so on a tie the local copy wins.
func (r Record) Newer(other time.Time) bool {
	return r.UpdatedAt.After(other)
}
