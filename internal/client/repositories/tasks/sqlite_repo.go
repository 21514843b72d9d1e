// Package tasks provides the sqlite-backed local task store.
package tasks

import (
	"context"
	"database/sql"
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

const taskColumns = `id, owner_key, title, description, date, time, frequency,
	completed, starred, reminder_enabled, reminder_offset_minutes, list_id,
	list_order, created_at, updated_at, synced_at, pending_sync, is_deleted`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var (
		t         models.Task
		frequency string
		listID    sql.NullInt64
		createdAt string
		updatedAt string
		syncedAt  sql.NullString
	)
	err := row.Scan(&t.ID, &t.OwnerKey, &t.Title, &t.Description, &t.Date,
		&t.Time, &frequency, &t.Completed, &t.Starred, &t.ReminderEnabled,
		&t.ReminderOffsetMinutes, &listID, &t.ListOrder,
		&createdAt, &updatedAt, &syncedAt, &t.PendingSync, &t.IsDeleted)
	if err != nil {
		return nil, err
	}

	t.Frequency = models.Frequency(frequency)
	if listID.Valid {
		t.ListID = &listID.Int64
	}
	if t.CreatedAt, err = models.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = models.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	if syncedAt.Valid {
		ts, err := models.ParseTime(syncedAt.String)
		if err != nil {
			return nil, err
		}
		t.SyncedAt = &ts
	}
	return &t, nil
}

func (r *SQLiteRepository) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context, ownerKey string) ([]models.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE owner_key=?`, ownerKey)
}

func (r *SQLiteRepository) GetActive(ctx context.Context, ownerKey string) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE owner_key=? AND is_deleted=0
		ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, ownerKey)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, ownerKey, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_key=? AND id=?`, ownerKey, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select task: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) GetPending(ctx context.Context, ownerKey string) ([]*models.Task, error) {
	all, err := r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_key=? AND pending_sync=1`, ownerKey)
	if err != nil {
		return nil, err
	}
	result := make([]*models.Task, len(all))
	for i := range all {
		result[i] = &all[i]
	}
	return result, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, task *models.Task) error {
	var listID sql.NullInt64
	if task.ListID != nil {
		listID = sql.NullInt64{Int64: *task.ListID, Valid: true}
	}
	var syncedAt sql.NullString
	if task.SyncedAt != nil {
		syncedAt = sql.NullString{String: models.FormatTime(*task.SyncedAt), Valid: true}
	}

	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_key, id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			date = excluded.date,
			time = excluded.time,
			frequency = excluded.frequency,
			completed = excluded.completed,
			starred = excluded.starred,
			reminder_enabled = excluded.reminder_enabled,
			reminder_offset_minutes = excluded.reminder_offset_minutes,
			list_id = excluded.list_id,
			list_order = excluded.list_order,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			synced_at = excluded.synced_at,
			pending_sync = excluded.pending_sync,
			is_deleted = excluded.is_deleted`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.OwnerKey, task.Title, task.Description, task.Date,
		task.Time, string(task.Frequency), task.Completed, task.Starred,
		task.ReminderEnabled, task.ReminderOffsetMinutes, listID, task.ListOrder,
		models.FormatTime(task.CreatedAt), models.FormatTime(task.UpdatedAt),
		syncedAt, task.PendingSync, task.IsDeleted)
	if err != nil {
		return fmt.Errorf("failed to upsert task: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, ownerKey, id string, now time.Time) error {
	query := `UPDATE tasks SET is_deleted=1, updated_at=?, pending_sync=1
		WHERE owner_key=? AND id=?`
	if _, err := r.db.ExecContext(ctx, query, models.FormatTime(now), ownerKey, id); err != nil {
		return fmt.Errorf("failed to soft-delete task: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) HardDelete(ctx context.Context, ownerKey, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE owner_key=? AND id=?`, ownerKey, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, ownerKey, id string, now time.Time) error {
	query := `UPDATE tasks SET pending_sync=0, synced_at=? WHERE owner_key=? AND id=?`
	if _, err := r.db.ExecContext(ctx, query, models.FormatTime(now), ownerKey, id); err != nil {
		return fmt.Errorf("failed to mark task synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReassignOwner(ctx context.Context, fromOwner, toOwner string) error {
	query := `UPDATE tasks SET owner_key=?, pending_sync=1 WHERE owner_key=?`
	if _, err := r.db.ExecContext(ctx, query, toOwner, fromOwner); err != nil {
		return fmt.Errorf("failed to reassign tasks: %w", err)
	}
	return nil
}
