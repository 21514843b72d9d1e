package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anandrajbgp/Noteflow/internal/server/models"
)

func TestUpsertDropsStaleWrite(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.Upsert(ctx, &models.Note{ID: "n1", OwnerKey: "u1", Title: "current", UpdatedAt: base}))
	require.NoError(t, r.Upsert(ctx, &models.Note{ID: "n1", OwnerKey: "u1", Title: "stale", UpdatedAt: base.Add(-time.Hour)}))
	require.NoError(t, r.Upsert(ctx, &models.Note{ID: "n1", OwnerKey: "u1", Title: "same stamp", UpdatedAt: base}))

	list, err := r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "current", list[0].Title)

	require.NoError(t, r.Upsert(ctx, &models.Note{ID: "n1", OwnerKey: "u1", Title: "newer", UpdatedAt: base.Add(time.Hour)}))
	list, err = r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "newer", list[0].Title)
}

func TestListByOwnerOrderAndIsolation(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.Upsert(ctx, &models.Note{ID: "a", OwnerKey: "u1", UpdatedAt: base}))
	require.NoError(t, r.Upsert(ctx, &models.Note{ID: "b", OwnerKey: "u1", UpdatedAt: base.Add(time.Minute)}))
	require.NoError(t, r.Upsert(ctx, &models.Note{ID: "c", OwnerKey: "u2", UpdatedAt: base}))

	list, err := r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
}

func TestDelete(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Note{ID: "a", OwnerKey: "u1", UpdatedAt: time.Now()}))
	require.NoError(t, r.Delete(ctx, "u1", "a"))
	require.NoError(t, r.Delete(ctx, "u1", "a"), "deleting a missing record is not an error")

	list, err := r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
