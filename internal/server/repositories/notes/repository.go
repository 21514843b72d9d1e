// Package notes persists the server-side copy of each owner's notes.
package notes

import (
	"context"

	"github.com/Anandrajbgp/Noteflow/internal/server/models"
)

type Repository interface {
	// Upsert inserts the record or overwrites it when the incoming
	// updated_at is strictly newer than the stored one. Stale writes are
	// dropped silently, which makes retried uploads harmless.
	Upsert(ctx context.Context, note *models.Note) error

	// ListByOwner returns every record for the owner, tombstones
	// included, newest update first.
	ListByOwner(ctx context.Context, ownerKey string) ([]models.Note, error)

	// Delete physically removes the record. Missing records are not an
	// error.
	Delete(ctx context.Context, ownerKey, id string) error
}
