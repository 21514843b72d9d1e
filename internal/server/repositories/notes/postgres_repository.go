package notes

import (
	"context"
	"encoding/json"
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

func (r *PostgresRepository) Upsert(ctx context.Context, note *models.Note) error {
	labels := note.Labels
	if labels == nil {
		labels = []string{}
	}
	rawLabels, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("encoding labels: %w", err)
	}

	query := `INSERT INTO notes
	            (id, owner_key, title, content, color, is_pinned, is_archived,
	             is_locked, labels, created_at, updated_at, is_deleted)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          ON CONFLICT (owner_key, id) DO UPDATE SET
	            title = EXCLUDED.title,
	            content = EXCLUDED.content,
	            color = EXCLUDED.color,
	            is_pinned = EXCLUDED.is_pinned,
	            is_archived = EXCLUDED.is_archived,
	            is_locked = EXCLUDED.is_locked,
	            labels = EXCLUDED.labels,
	            updated_at = EXCLUDED.updated_at,
	            is_deleted = EXCLUDED.is_deleted
	          WHERE notes.updated_at < EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		note.ID, note.OwnerKey, note.Title, note.Content, note.Color,
		note.IsPinned, note.IsArchived, note.IsLocked, rawLabels,
		note.CreatedAt, note.UpdatedAt, note.IsDeleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerKey string) ([]models.Note, error) {
	query := `SELECT id, owner_key, title, content, color, is_pinned, is_archived,
	                 is_locked, labels, created_at, updated_at, is_deleted
	          FROM notes
	          WHERE owner_key = $1
	          ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		var n models.Note
		var rawLabels []byte
		err := rows.Scan(&n.ID, &n.OwnerKey, &n.Title, &n.Content, &n.Color,
			&n.IsPinned, &n.IsArchived, &n.IsLocked, &rawLabels,
			&n.CreatedAt, &n.UpdatedAt, &n.IsDeleted)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(rawLabels, &n.Labels); err != nil {
			return nil, fmt.Errorf("decoding labels: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerKey, id string) error {
	query := `DELETE FROM notes WHERE owner_key = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, ownerKey, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
