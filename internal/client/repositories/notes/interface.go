package notes

import (
	"context"
	"time"

	"github.com/Anandrajbgp/Noteflow/internal/client/models"
)

// Repository is the local note store for one device. All queries are scoped
// by owner key; records for different owners never mix.
//
// Storage failures propagate to the caller as-is. The repository performs no
// retries and no cross-record transactions: each operation touches a single
// record atomically. Callers serialize mutations per owner.
type Repository interface {
	// GetAll returns every record for the owner, tombstones included,
	// unordered.
	GetAll(ctx context.Context, ownerKey string) ([]models.Note, error)

	// GetActive returns non-deleted records, pinned first, then most
	// recently updated.
	GetActive(ctx context.Context, ownerKey string) ([]models.Note, error)

	// GetByID returns a record by id, tombstones included.
	// Returns common.ErrNotFound when absent.
	GetByID(ctx context.Context, ownerKey, id string) (*models.Note, error)

	// GetPending returns records whose latest local mutation has not yet
	// been confirmed uploaded, tombstones included.
	GetPending(ctx context.Context, ownerKey string) ([]*models.Note, error)

	// Put inserts or overwrites the record by id within its owner scope.
	Put(ctx context.Context, note *models.Note) error

	// SoftDelete marks the record deleted, refreshes updated_at, and flags
	// it pending. No-op when the record is absent.
	SoftDelete(ctx context.Context, ownerKey, id string, now time.Time) error

	// HardDelete physically removes the record. Maintenance only; the sync
	// engine never calls it.
	HardDelete(ctx context.Context, ownerKey, id string) error

	// MarkSynced clears the pending flag and stamps synced_at.
	MarkSynced(ctx context.Context, ownerKey, id string, now time.Time) error

	// ReassignOwner moves every record from one owner scope to another and
	// flags the moved records pending. Used at login to hand records
	// created before authentication over to the account.
	ReassignOwner(ctx context.Context, fromOwner, toOwner string) error
}
