// Package notes provides the sqlite-backed local note store.
package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Anandrajbgp/Noteflow/internal/client/models"
	"github.com/Anandrajbgp/Noteflow/internal/common"
	"github.com/Anandrajbgp/Noteflow/internal/dbx"
)

// SQLiteRepository implements Repository over a dbx.DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const noteColumns = `id, owner_key, title, content, color, is_pinned, is_archived,
	is_locked, lock_pin_hash, labels, created_at, updated_at, synced_at,
	pending_sync, is_deleted`

func scanNote(row interface{ Scan(...any) error }) (*models.Note, error) {
	var (
		n         models.Note
		labels    string
		createdAt string
		updatedAt string
		syncedAt  sql.NullString
	)
	err := row.Scan(&n.ID, &n.OwnerKey, &n.Title, &n.Content, &n.Color,
		&n.IsPinned, &n.IsArchived, &n.IsLocked, &n.LockPINHash, &labels,
		&createdAt, &updatedAt, &syncedAt, &n.PendingSync, &n.IsDeleted)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(labels), &n.Labels); err != nil {
		return nil, fmt.Errorf("failed to decode labels: %w", err)
	}
	if n.CreatedAt, err = models.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = models.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	if syncedAt.Valid {
		t, err := models.ParseTime(syncedAt.String)
		if err != nil {
			return nil, err
		}
		n.SyncedAt = &t
	}
	return &n, nil
}

func (r *SQLiteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context, ownerKey string) ([]models.Note, error) {
	return r.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes WHERE owner_key=?`, ownerKey)
}

func (r *SQLiteRepository) GetActive(ctx context.Context, ownerKey string) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes
		WHERE owner_key=? AND is_deleted=0
		ORDER BY is_pinned DESC, updated_at DESC`
	return r.queryNotes(ctx, query, ownerKey)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, ownerKey, id string) (*models.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE owner_key=? AND id=?`, ownerKey, id)
	n, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select note: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) GetPending(ctx context.Context, ownerKey string) ([]*models.Note, error) {
	all, err := r.queryNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE owner_key=? AND pending_sync=1`, ownerKey)
	if err != nil {
		return nil, err
	}
	result := make([]*models.Note, len(all))
	for i := range all {
		result[i] = &all[i]
	}
	return result, nil
}

// Put upserts by (owner_key, id). The whole record body is replaced; the
// write is a single statement, so one record's persistence is atomic.
func (r *SQLiteRepository) Put(ctx context.Context, note *models.Note) error {
	labels, err := json.Marshal(note.Labels)
	if err != nil {
		return fmt.Errorf("failed to encode labels: %w", err)
	}
	if note.Labels == nil {
		labels = []byte("[]")
	}

	var syncedAt sql.NullString
	if note.SyncedAt != nil {
		syncedAt = sql.NullString{String: models.FormatTime(*note.SyncedAt), Valid: true}
	}

	query := `INSERT INTO notes (` + noteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_key, id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			color = excluded.color,
			is_pinned = excluded.is_pinned,
			is_archived = excluded.is_archived,
			is_locked = excluded.is_locked,
			lock_pin_hash = excluded.lock_pin_hash,
			labels = excluded.labels,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			synced_at = excluded.synced_at,
			pending_sync = excluded.pending_sync,
			is_deleted = excluded.is_deleted`

	_, err = r.db.ExecContext(ctx, query,
		note.ID, note.OwnerKey, note.Title, note.Content, note.Color,
		note.IsPinned, note.IsArchived, note.IsLocked, note.LockPINHash,
		string(labels), models.FormatTime(note.CreatedAt),
		models.FormatTime(note.UpdatedAt), syncedAt, note.PendingSync, note.IsDeleted)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, ownerKey, id string, now time.Time) error {
	query := `UPDATE notes SET is_deleted=1, updated_at=?, pending_sync=1
		WHERE owner_key=? AND id=?`
	if _, err := r.db.ExecContext(ctx, query, models.FormatTime(now), ownerKey, id); err != nil {
		return fmt.Errorf("failed to soft-delete note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) HardDelete(ctx context.Context, ownerKey, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE owner_key=? AND id=?`, ownerKey, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, ownerKey, id string, now time.Time) error {
	query := `UPDATE notes SET pending_sync=0, synced_at=? WHERE owner_key=? AND id=?`
	if _, err := r.db.ExecContext(ctx, query, models.FormatTime(now), ownerKey, id); err != nil {
		return fmt.Errorf("failed to mark note synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReassignOwner(ctx context.Context, fromOwner, toOwner string) error {
	query := `UPDATE notes SET owner_key=?, pending_sync=1 WHERE owner_key=?`
	if _, err := r.db.ExecContext(ctx, query, toOwner, fromOwner); err != nil {
		return fmt.Errorf("failed to reassign notes: %w", err)
	}
	return nil
}
