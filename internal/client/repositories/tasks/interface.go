package tasks

import (
	"context"
	"time"

	"github.com/Anandrajbgp/Noteflow/internal/client/models"
)

// Repository is the local task store for one device. Same contract as the
// note store: owner-scoped queries, tombstones retained, failures propagate,
// no retries, callers serialize mutations per owner.
type Repository interface {
	// GetAll returns every record for the owner, tombstones included,
	// unordered.
	GetAll(ctx context.Context, ownerKey string) ([]models.Task, error)

	// GetActive returns non-deleted records, most recently created first.
	GetActive(ctx context.Context, ownerKey string) ([]models.Task, error)

	// GetByID returns a record by id, tombstones included.
	// Returns common.ErrNotFound when absent.
	GetByID(ctx context.Context, ownerKey, id string) (*models.Task, error)

	// GetPending returns records not yet confirmed uploaded.
	GetPending(ctx context.Context, ownerKey string) ([]*models.Task, error)

	// Put inserts or overwrites the record by id within its owner scope.
	Put(ctx context.Context, task *models.Task) error

	// SoftDelete marks the record deleted, refreshes updated_at, and flags
	// it pending. No-op when the record is absent.
	SoftDelete(ctx context.Context, ownerKey, id string, now time.Time) error

	// HardDelete physically removes the record.
	HardDelete(ctx context.Context, ownerKey, id string) error

	// MarkSynced clears the pending flag and stamps synced_at.
	MarkSynced(ctx context.Context, ownerKey, id string, now time.Time) error

	// ReassignOwner moves every record from one owner scope to another and
	// flags the moved records pending. Used at login to hand records
	// created before authentication over to the account.
	ReassignOwner(ctx context.Context, fromOwner, toOwner string) error
}
