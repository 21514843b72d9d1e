package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Anandrajbgp/Noteflow/internal/client/gateway"
	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/notes"
	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/tasks"
	"github.com/Anandrajbgp/Noteflow/internal/client/session"
	"github.com/Anandrajbgp/Noteflow/internal/common"
	"github.com/Anandrajbgp/Noteflow/internal/logging"
)

// Syncer is the trigger surface the entity services see: they request a
// sync attempt and move on, never waiting for the result.
type Syncer interface {
	TriggerSync(sess session.Session)
	// TriggerNoteDelete asks the backend to drop a note row. Best effort;
	// the local tombstone stands whatever happens on the remote side.
	TriggerNoteDelete(sess session.Session, id string)
	// TriggerTaskDelete is TriggerNoteDelete for tasks.
	TriggerTaskDelete(sess session.Session, id string)
}

// SyncService runs reconciliation passes against the backend.
//
// A pass uploads every locally pending record first, then downloads the
// remote set and merges it by last-writer-wins on UpdatedAt. A remote copy
// replaces the local one only when its UpdatedAt is strictly greater, so a
// tie keeps the local copy. Passes for one owner are serialized; a single
// failing record is logged and skipped without aborting the pass.
type SyncService interface {
	Syncer
	// Sync runs one full pass for the session. Unauthenticated sessions
	// are a no-op.
	Sync(ctx context.Context, sess session.Session) error
	// Await blocks until every triggered background pass has finished.
	Await()
}

type syncService struct {
	client   gateway.Client
	noteRepo notes.Repository
	taskRepo tasks.Repository
	logger   logging.Logger
	locks    *ownerLocks
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewSyncService(client gateway.Client, noteRepo notes.Repository, taskRepo tasks.Repository, logger logging.Logger) SyncService {
	return &syncService{
		client:   client,
		noteRepo: noteRepo,
		taskRepo: taskRepo,
		logger:   logger,
		locks:    newOwnerLocks(),
		now:      time.Now,
	}
}

func (s *syncService) TriggerSync(sess session.Session) {
	if !sess.Authenticated() {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.Background()
		if err := s.Sync(ctx, sess); err != nil {
			s.logger.Warn(ctx, "background sync failed", "owner", sess.OwnerKey(), "error", err)
		}
	}()
}

func (s *syncService) TriggerNoteDelete(sess session.Session, id string) {
	s.triggerDelete(sess, id, "note", s.client.DeleteNote)
}

func (s *syncService) TriggerTaskDelete(sess session.Session, id string) {
	s.triggerDelete(sess, id, "task", s.client.DeleteTask)
}

func (s *syncService) triggerDelete(sess session.Session, id, kind string, del func(context.Context, string) error) {
	if !sess.Authenticated() {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.Background()
		if err := del(ctx, id); err != nil {
			s.logger.Warn(ctx, "remote delete failed", "kind", kind, "id", id, "error", err)
		}
	}()
}

func (s *syncService) Await() {
	s.wg.Wait()
}

func (s *syncService) Sync(ctx context.Context, sess session.Session) error {
	if !sess.Authenticated() {
		s.logger.Debug(ctx, "sync skipped for local session")
		return nil
	}

	unlock := s.locks.acquire(sess.OwnerKey())
	defer unlock()

	owner := sess.OwnerKey()
	log := s.logger.With("owner", owner)

	if err := s.uploadNotes(ctx, owner, log); err != nil {
		return err
	}
	if err := s.uploadTasks(ctx, owner, log); err != nil {
		return err
	}
	if err := s.downloadNotes(ctx, owner, log); err != nil {
		return err
	}
	if err := s.downloadTasks(ctx, owner, log); err != nil {
		return err
	}

	log.Info(ctx, "sync pass finished")
	return nil
}

// fatalSync reports errors that invalidate the whole pass rather than a
// single record.
func fatalSync(err error) bool {
	return errors.Is(err, gateway.ErrUnavailable) ||
		errors.Is(err, gateway.ErrUnauthorized) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (s *syncService) uploadNotes(ctx context.Context, owner string, log logging.Logger) error {
	pending, err := s.noteRepo.GetPending(ctx, owner)
	if err != nil {
		return fmt.Errorf("listing pending notes: %w", err)
	}
	for _, n := range pending {
		if err := s.client.UpsertNote(ctx, gateway.NoteToPayload(n)); err != nil {
			if fatalSync(err) {
				return fmt.Errorf("uploading note %s: %w", n.ID, err)
			}
			log.Warn(ctx, "note upload skipped", "id", n.ID, "error", err)
			continue
		}
		if err := s.noteRepo.MarkSynced(ctx, owner, n.ID, s.now()); err != nil {
			return fmt.Errorf("marking note %s synced: %w", n.ID, err)
		}
	}
	return nil
}

func (s *syncService) uploadTasks(ctx context.Context, owner string, log logging.Logger) error {
	pending, err := s.taskRepo.GetPending(ctx, owner)
	if err != nil {
		return fmt.Errorf("listing pending tasks: %w", err)
	}
	for _, t := range pending {
		if err := s.client.UpsertTask(ctx, gateway.TaskToPayload(t)); err != nil {
			if fatalSync(err) {
				return fmt.Errorf("uploading task %s: %w", t.ID, err)
			}
			log.Warn(ctx, "task upload skipped", "id", t.ID, "error", err)
			continue
		}
		if err := s.taskRepo.MarkSynced(ctx, owner, t.ID, s.now()); err != nil {
			return fmt.Errorf("marking task %s synced: %w", t.ID, err)
		}
	}
	return nil
}

func (s *syncService) downloadNotes(ctx context.Context, owner string, log logging.Logger) error {
	payloads, err := s.client.QueryNotes(ctx, owner)
	if err != nil {
		return fmt.Errorf("querying remote notes: %w", err)
	}
	for _, p := range payloads {
		remote, err := gateway.NoteFromPayload(p)
		if err != nil {
			log.Warn(ctx, "remote note skipped", "id", p.ID, "error", err)
			continue
		}

		local, err := s.noteRepo.GetByID(ctx, owner, remote.ID)
		switch {
		case err == nil:
			if !remote.Newer(local.UpdatedAt) {
				continue
			}
			// The PIN hash never travels, so a newer remote copy must
			// not wipe the one already on the device.
			remote.LockPINHash = local.LockPINHash
		case errors.Is(err, common.ErrNotFound):
			// New on this device, adopt it.
		default:
			return fmt.Errorf("loading local note %s: %w", remote.ID, err)
		}

		now := s.now()
		remote.OwnerKey = owner
		remote.PendingSync = false
		remote.SyncedAt = &now
		if err := s.noteRepo.Put(ctx, remote); err != nil {
			return fmt.Errorf("storing remote note %s: %w", remote.ID, err)
		}
	}
	return nil
}

func (s *syncService) downloadTasks(ctx context.Context, owner string, log logging.Logger) error {
	payloads, err := s.client.QueryTasks(ctx, owner)
	if err != nil {
		return fmt.Errorf("querying remote tasks: %w", err)
	}
	for _, p := range payloads {
		remote, err := gateway.TaskFromPayload(p)
		if err != nil {
			log.Warn(ctx, "remote task skipped", "id", p.ID, "error", err)
			continue
		}

		local, err := s.taskRepo.GetByID(ctx, owner, remote.ID)
		switch {
		case err == nil:
			if !remote.Newer(local.UpdatedAt) {
				continue
			}
		case errors.Is(err, common.ErrNotFound):
		default:
			return fmt.Errorf("loading local task %s: %w", remote.ID, err)
		}

		now := s.now()
		remote.OwnerKey = owner
		remote.PendingSync = false
		remote.SyncedAt = &now
		if err := s.taskRepo.Put(ctx, remote); err != nil {
			return fmt.Errorf("storing remote task %s: %w", remote.ID, err)
		}
	}
	return nil
}
