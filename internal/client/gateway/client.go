// Package gateway talks to the Noteflow sync backend. It is the only way
// records leave the device, which makes its payload types the enforcement
// point for the locally-sensitive fields: the wire structs simply have no
// place for a PIN hash.
package gateway

import "context"

// AuthResult is returned by Login: the stable server-side user id becomes
// the owner key for all subsequent record operations.
type AuthResult struct {
	UserID string
	Token  string
}

// Client is the device-side view of the sync backend.
//
// Upserts are idempotent by record id. Queries return the full remote set
// for the owner ordered by updated_at descending; the engine re-merges
// regardless of order. Deletes are best-effort hard deletes.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*AuthResult, error)

	UpsertNote(ctx context.Context, p NotePayload) error
	UpsertTask(ctx context.Context, p TaskPayload) error
	QueryNotes(ctx context.Context, ownerKey string) ([]NotePayload, error)
	QueryTasks(ctx context.Context, ownerKey string) ([]TaskPayload, error)
	DeleteNote(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}
