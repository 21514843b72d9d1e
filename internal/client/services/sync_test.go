package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/Anandrajbgp/Noteflow/internal/client/gateway"
	"github.com/Anandrajbgp/Noteflow/internal/client/models"
	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/notes"
	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/tasks"
	"github.com/Anandrajbgp/Noteflow/internal/client/session"
	"github.com/Anandrajbgp/Noteflow/internal/logging"
)

func setupDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS notes (
  id            TEXT NOT NULL,
  owner_key     TEXT NOT NULL,
  title         TEXT NOT NULL DEFAULT '',
  content       TEXT NOT NULL DEFAULT '',
  color         TEXT NOT NULL DEFAULT '',
  is_pinned     INTEGER NOT NULL DEFAULT 0,
  is_archived   INTEGER NOT NULL DEFAULT 0,
  is_locked     INTEGER NOT NULL DEFAULT 0,
  lock_pin_hash TEXT NOT NULL DEFAULT '',
  labels        TEXT NOT NULL DEFAULT '[]',
  created_at    TEXT NOT NULL,
  updated_at    TEXT NOT NULL,
  synced_at     TEXT,
  pending_sync  INTEGER NOT NULL DEFAULT 0,
  is_deleted    INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (owner_key, id)
);

CREATE TABLE IF NOT EXISTS tasks (
  id                      TEXT NOT NULL,
  owner_key               TEXT NOT NULL,
  title                   TEXT NOT NULL DEFAULT '',
  description             TEXT NOT NULL DEFAULT '',
  date                    TEXT NOT NULL DEFAULT '',
  time                    TEXT NOT NULL DEFAULT '',
  frequency               TEXT NOT NULL DEFAULT 'once',
  completed               INTEGER NOT NULL DEFAULT 0,
  starred                 INTEGER NOT NULL DEFAULT 0,
  reminder_enabled        INTEGER NOT NULL DEFAULT 0,
  reminder_offset_minutes INTEGER NOT NULL DEFAULT 0,
  list_id                 INTEGER,
  list_order              INTEGER NOT NULL DEFAULT 0,
  created_at              TEXT NOT NULL,
  updated_at              TEXT NOT NULL,
  synced_at               TEXT,
  pending_sync            INTEGER NOT NULL DEFAULT 0,
  is_deleted              INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (owner_key, id)
);
`)
	require.NoError(t, err)
	return db
}

// fakeGateway keeps the "remote" record sets in memory.
type fakeGateway struct {
	gateway.Client

	mu         sync.Mutex
	notes      map[string]gateway.NotePayload
	tasks      map[string]gateway.TaskPayload
	upsertErrs map[string]error
	err        error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		notes:      make(map[string]gateway.NotePayload),
		tasks:      make(map[string]gateway.TaskPayload),
		upsertErrs: make(map[string]error),
	}
}

func (f *fakeGateway) UpsertNote(ctx context.Context, p gateway.NotePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if err, ok := f.upsertErrs[p.ID]; ok {
		return err
	}
	f.notes[p.ID] = p
	return nil
}

func (f *fakeGateway) UpsertTask(ctx context.Context, p gateway.TaskPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if err, ok := f.upsertErrs[p.ID]; ok {
		return err
	}
	f.tasks[p.ID] = p
	return nil
}

func (f *fakeGateway) DeleteNote(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.notes, id)
	return nil
}

func (f *fakeGateway) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeGateway) QueryNotes(ctx context.Context, ownerKey string) ([]gateway.NotePayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []gateway.NotePayload
	for _, p := range f.notes {
		if p.OwnerKey == ownerKey {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeGateway) QueryTasks(ctx context.Context, ownerKey string) ([]gateway.TaskPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []gateway.TaskPayload
	for _, p := range f.tasks {
		if p.OwnerKey == ownerKey {
			out = append(out, p)
		}
	}
	return out, nil
}

type syncFixture struct {
	svc      SyncService
	gw       *fakeGateway
	noteRepo notes.Repository
	taskRepo tasks.Repository
	sess     session.Session
}

func newSyncFixture(t *testing.T, name string) *syncFixture {
	t.Helper()
	db := setupDB(t, name)
	gw := newFakeGateway()
	noteRepo := notes.NewSQLiteRepository(db)
	taskRepo := tasks.NewSQLiteRepository(db)
	return &syncFixture{
		svc:      NewSyncService(gw, noteRepo, taskRepo, logging.NewNop()),
		gw:       gw,
		noteRepo: noteRepo,
		taskRepo: taskRepo,
		sess:     session.ForUser("user-1", "tok"),
	}
}

func pendingNote(owner, id, title string, updatedAt time.Time) *models.Note {
	return &models.Note{
		Record: models.Record{
			ID:          id,
			OwnerKey:    owner,
			CreatedAt:   updatedAt,
			UpdatedAt:   updatedAt,
			PendingSync: true,
		},
		Title: title,
	}
}

func TestSyncSkipsLocalSession(t *testing.T) {
	f := newSyncFixture(t, "synclocal")
	require.NoError(t, f.svc.Sync(context.Background(), session.Local()))
	assert.Empty(t, f.gw.notes)
}

func TestSyncUploadsPendingAndMarksSynced(t *testing.T) {
	f := newSyncFixture(t, "syncupload")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.noteRepo.Put(ctx, pendingNote("user-1", "n1", "hello", base)))

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	assert.Contains(t, f.gw.notes, "n1")
	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.False(t, got.PendingSync)
	require.NotNil(t, got.SyncedAt)
}

func TestSyncRetryUploadIsIdempotent(t *testing.T) {
	f := newSyncFixture(t, "syncretry")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.noteRepo.Put(ctx, pendingNote("user-1", "n1", "hello", base)))
	require.NoError(t, f.svc.Sync(ctx, f.sess))
	uploaded := f.gw.notes["n1"]

	// Flag the record pending again, as if the pass crashed between the
	// upload and MarkSynced, and retry.
	retried, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	retried.PendingSync = true
	require.NoError(t, f.noteRepo.Put(ctx, retried))

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	assert.Len(t, f.gw.notes, 1)
	assert.Equal(t, uploaded, f.gw.notes["n1"], "retry must replay the identical payload")

	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.False(t, got.PendingSync)
	assert.Equal(t, "hello", got.Title)
	assert.True(t, got.UpdatedAt.Equal(base))
}

func TestSyncDownloadsUnknownRemote(t *testing.T) {
	f := newSyncFixture(t, "syncdownload")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	remote := pendingNote("user-1", "n-remote", "from cloud", base)
	f.gw.notes["n-remote"] = gateway.NoteToPayload(remote)

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	got, err := f.noteRepo.GetByID(ctx, "user-1", "n-remote")
	require.NoError(t, err)
	assert.Equal(t, "from cloud", got.Title)
	assert.False(t, got.PendingSync)
	require.NotNil(t, got.SyncedAt)
}

func TestSyncRemoteNewerWinsAndKeepsPINHash(t *testing.T) {
	f := newSyncFixture(t, "syncremotewins")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := pendingNote("user-1", "n1", "old title", base)
	local.PendingSync = false
	local.IsLocked = true
	local.LockPINHash = "local-hash"
	require.NoError(t, f.noteRepo.Put(ctx, local))

	remote := pendingNote("user-1", "n1", "new title", base.Add(time.Hour))
	remote.IsLocked = true
	f.gw.notes["n1"] = gateway.NoteToPayload(remote)

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "local-hash", got.LockPINHash)
	assert.False(t, got.PendingSync)
}

func TestSyncLocalWinsOnTie(t *testing.T) {
	f := newSyncFixture(t, "synctie")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := pendingNote("user-1", "n1", "local title", base)
	local.PendingSync = false
	require.NoError(t, f.noteRepo.Put(ctx, local))

	remote := pendingNote("user-1", "n1", "remote title", base)
	f.gw.notes["n1"] = gateway.NoteToPayload(remote)

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.Equal(t, "local title", got.Title)
}

func TestSyncLocalNewerKept(t *testing.T) {
	f := newSyncFixture(t, "synclocalnewer")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := pendingNote("user-1", "n1", "edited offline", base.Add(time.Hour))
	require.NoError(t, f.noteRepo.Put(ctx, local))

	remote := pendingNote("user-1", "n1", "stale cloud copy", base)
	f.gw.notes["n1"] = gateway.NoteToPayload(remote)

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	// The local edit was uploaded, not overwritten.
	assert.Equal(t, "edited offline", f.gw.notes["n1"].Title)
	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.Equal(t, "edited offline", got.Title)
	assert.False(t, got.PendingSync)
}

func TestSyncRemoteTombstoneWins(t *testing.T) {
	f := newSyncFixture(t, "synctombstone")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := pendingNote("user-1", "n1", "deleted elsewhere", base)
	local.PendingSync = false
	require.NoError(t, f.noteRepo.Put(ctx, local))

	remote := pendingNote("user-1", "n1", "deleted elsewhere", base.Add(time.Minute))
	remote.IsDeleted = true
	f.gw.notes["n1"] = gateway.NoteToPayload(remote)

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)

	active, err := f.noteRepo.GetActive(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSyncStaleRemoteDoesNotResurrectTombstone(t *testing.T) {
	f := newSyncFixture(t, "syncresurrect")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := pendingNote("user-1", "n1", "deleted here", base.Add(time.Hour))
	local.PendingSync = false
	local.IsDeleted = true
	require.NoError(t, f.noteRepo.Put(ctx, local))

	remote := pendingNote("user-1", "n1", "live stale copy", base)
	f.gw.notes["n1"] = gateway.NoteToPayload(remote)

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.True(t, got.IsDeleted, "a stale remote copy must not undo the deletion")
}

func TestSyncUploadsRecordsClaimedAtLogin(t *testing.T) {
	f := newSyncFixture(t, "syncclaimed")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// Created before authentication: local owner, nothing pending.
	offline := pendingNote("local", "n1", "written offline", base)
	offline.PendingSync = false
	require.NoError(t, f.noteRepo.Put(ctx, offline))

	require.NoError(t, f.noteRepo.ReassignOwner(ctx, "local", "user-1"))
	require.NoError(t, f.svc.Sync(ctx, f.sess))

	assert.Contains(t, f.gw.notes, "n1")
	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.False(t, got.PendingSync)
	require.NotNil(t, got.SyncedAt)
}

func TestSyncToleratesSingleRecordFailure(t *testing.T) {
	f := newSyncFixture(t, "syncpartial")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.noteRepo.Put(ctx, pendingNote("user-1", "bad", "rejected", base)))
	require.NoError(t, f.noteRepo.Put(ctx, pendingNote("user-1", "good", "accepted", base)))
	f.gw.upsertErrs["bad"] = errors.New("server rejected record")

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	good, err := f.noteRepo.GetByID(ctx, "user-1", "good")
	require.NoError(t, err)
	assert.False(t, good.PendingSync)

	bad, err := f.noteRepo.GetByID(ctx, "user-1", "bad")
	require.NoError(t, err)
	assert.True(t, bad.PendingSync, "failed record must stay pending for the next pass")
}

func TestSyncAbortsWhenServerUnavailable(t *testing.T) {
	f := newSyncFixture(t, "syncdown")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.noteRepo.Put(ctx, pendingNote("user-1", "n1", "offline edit", base)))
	f.gw.err = gateway.ErrUnavailable

	err := f.svc.Sync(ctx, f.sess)
	require.ErrorIs(t, err, gateway.ErrUnavailable)

	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.True(t, got.PendingSync)
}

func TestSyncDoesNotTouchOtherOwners(t *testing.T) {
	f := newSyncFixture(t, "syncisolation")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.noteRepo.Put(ctx, pendingNote("local", "n-local", "private", base)))

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	assert.NotContains(t, f.gw.notes, "n-local")
	got, err := f.noteRepo.GetByID(ctx, "local", "n-local")
	require.NoError(t, err)
	assert.True(t, got.PendingSync)
}

func TestSyncUploadsPendingTask(t *testing.T) {
	f := newSyncFixture(t, "synctask")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tk := &models.Task{
		Record: models.Record{
			ID:          "t1",
			OwnerKey:    "user-1",
			CreatedAt:   base,
			UpdatedAt:   base,
			PendingSync: true,
		},
		Title:     "water plants",
		Frequency: models.FrequencyOnce,
	}
	require.NoError(t, f.taskRepo.Put(ctx, tk))

	require.NoError(t, f.svc.Sync(ctx, f.sess))

	assert.Contains(t, f.gw.tasks, "t1")
	got, err := f.taskRepo.GetByID(ctx, "user-1", "t1")
	require.NoError(t, err)
	assert.False(t, got.PendingSync)
}

func TestTriggerSyncRunsInBackground(t *testing.T) {
	f := newSyncFixture(t, "synctrigger")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.noteRepo.Put(ctx, pendingNote("user-1", "n1", "hello", base)))

	f.svc.TriggerSync(f.sess)
	f.svc.Await()

	got, err := f.noteRepo.GetByID(ctx, "user-1", "n1")
	require.NoError(t, err)
	assert.False(t, got.PendingSync)
}

func TestTriggerNoteDeleteRemovesRemoteRow(t *testing.T) {
	f := newSyncFixture(t, "syncremotedelete")
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	f.gw.notes["n1"] = gateway.NoteToPayload(pendingNote("user-1", "n1", "gone", base))

	f.svc.TriggerNoteDelete(f.sess, "n1")
	f.svc.Await()

	assert.NotContains(t, f.gw.notes, "n1")
}

func TestTriggerNoteDeleteIgnoresLocalSession(t *testing.T) {
	f := newSyncFixture(t, "syncremotedeletelocal")
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	f.gw.notes["n1"] = gateway.NoteToPayload(pendingNote("user-1", "n1", "kept", base))

	f.svc.TriggerNoteDelete(session.Local(), "n1")
	f.svc.Await()

	assert.Contains(t, f.gw.notes, "n1")
}

func TestTriggerSyncIgnoresLocalSession(t *testing.T) {
	f := newSyncFixture(t, "synctriggerlocal")
	f.svc.TriggerSync(session.Local())
	f.svc.Await()
	assert.Empty(t, f.gw.notes)
}
