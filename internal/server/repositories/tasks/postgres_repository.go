package tasks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Anandrajbgp/Noteflow/internal/dbx"
	"github.com/Anandrajbgp/Noteflow/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, task *models.Task) error {
	var listID sql.NullInt64
	if task.ListID != nil {
		listID = sql.NullInt64{Int64: *task.ListID, Valid: true}
	}

	query := `INSERT INTO tasks
	            (id, owner_key, title, description, date, time, frequency,
	             completed, starred, reminder_enabled, reminder_offset_minutes,
	             list_id, list_order, created_at, updated_at, is_deleted)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          ON CONFLICT (owner_key, id) DO UPDATE SET
	            title = EXCLUDED.title,
	            description = EXCLUDED.description,
	            date = EXCLUDED.date,
	            time = EXCLUDED.time,
	            frequency = EXCLUDED.frequency,
	            completed = EXCLUDED.completed,
	            starred = EXCLUDED.starred,
	            reminder_enabled = EXCLUDED.reminder_enabled,
	            reminder_offset_minutes = EXCLUDED.reminder_offset_minutes,
	            list_id = EXCLUDED.list_id,
	            list_order = EXCLUDED.list_order,
	            updated_at = EXCLUDED.updated_at,
	            is_deleted = EXCLUDED.is_deleted
	          WHERE tasks.updated_at < EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.OwnerKey, task.Title, task.Description, task.Date, task.Time,
		task.Frequency, task.Completed, task.Starred, task.ReminderEnabled,
		task.ReminderOffsetMinutes, listID, task.ListOrder,
		task.CreatedAt, task.UpdatedAt, task.IsDeleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerKey string) ([]models.Task, error) {
	query := `SELECT id, owner_key, title, description, date, time, frequency,
	                 completed, starred, reminder_enabled, reminder_offset_minutes,
	                 list_id, list_order, created_at, updated_at, is_deleted
	          FROM tasks
	          WHERE owner_key = $1
	          ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		var t models.Task
		var listID sql.NullInt64
		err := rows.Scan(&t.ID, &t.OwnerKey, &t.Title, &t.Description, &t.Date, &t.Time,
			&t.Frequency, &t.Completed, &t.Starred, &t.ReminderEnabled,
			&t.ReminderOffsetMinutes, &listID, &t.ListOrder,
			&t.CreatedAt, &t.UpdatedAt, &t.IsDeleted)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if listID.Valid {
			t.ListID = &listID.Int64
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerKey, id string) error {
	query := `DELETE FROM tasks WHERE owner_key = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, ownerKey, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
