package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Anandrajbgp/Noteflow/internal/client/models"
	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/notes"
	"github.com/Anandrajbgp/Noteflow/internal/client/session"
	"github.com/Anandrajbgp/Noteflow/internal/common"
	"github.com/Anandrajbgp/Noteflow/internal/cryptox"
)

// NoteDraft carries the user-editable fields of a new note.
type NoteDraft struct {
	Title    string
	Content  string
	Color    string
	IsPinned bool
	Labels   []string
}

// NoteService owns every note mutation. Each successful write lands locally
// first and then triggers a background sync attempt; the UI never waits for
// the network.
type NoteService interface {
	List(ctx context.Context, sess session.Session) ([]models.Note, error)
	Get(ctx context.Context, sess session.Session, id string) (*models.Note, error)
	Create(ctx context.Context, sess session.Session, draft NoteDraft) (*models.Note, error)
	Update(ctx context.Context, sess session.Session, id string, patch models.NotePatch) (*models.Note, error)
	Remove(ctx context.Context, sess session.Session, id string) error
	TogglePin(ctx context.Context, sess session.Session, id string) (*models.Note, error)
	ToggleArchive(ctx context.Context, sess session.Session, id string) (*models.Note, error)
	Lock(ctx context.Context, sess session.Session, id, pin string) error
	Unlock(ctx context.Context, sess session.Session, id, pin string) error
	VerifyPIN(ctx context.Context, sess session.Session, id, pin string) (bool, error)
}

type noteService struct {
	repo   notes.Repository
	syncer Syncer
	locks  *ownerLocks
	now    func() time.Time
}

func NewNoteService(repo notes.Repository, syncer Syncer) NoteService {
	return &noteService{repo: repo, syncer: syncer, locks: newOwnerLocks(), now: time.Now}
}

func (s *noteService) List(ctx context.Context, sess session.Session) ([]models.Note, error) {
	return s.repo.GetActive(ctx, sess.OwnerKey())
}

func (s *noteService) Get(ctx context.Context, sess session.Session, id string) (*models.Note, error) {
	n, err := s.repo.GetByID(ctx, sess.OwnerKey(), id)
	if err != nil {
		return nil, err
	}
	if n.IsDeleted {
		return nil, common.ErrNotFound
	}
	return n, nil
}

func (s *noteService) Create(ctx context.Context, sess session.Session, draft NoteDraft) (*models.Note, error) {
	if strings.TrimSpace(draft.Title) == "" && strings.TrimSpace(draft.Content) == "" {
		return nil, fmt.Errorf("%w: note needs a title or content", common.ErrValidation)
	}

	now := s.now().UTC()
	n := &models.Note{
		Record: models.Record{
			ID:          uuid.NewString(),
			OwnerKey:    sess.OwnerKey(),
			CreatedAt:   now,
			UpdatedAt:   now,
			PendingSync: sess.Authenticated(),
		},
		Title:    draft.Title,
		Content:  draft.Content,
		Color:    draft.Color,
		IsPinned: draft.IsPinned,
		Labels:   draft.Labels,
	}

	unlock := s.locks.acquire(sess.OwnerKey())
	defer unlock()
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, fmt.Errorf("saving note: %w", err)
	}
	s.syncer.TriggerSync(sess)
	return n, nil
}

func (s *noteService) Update(ctx context.Context, sess session.Session, id string, patch models.NotePatch) (*models.Note, error) {
	// The read-modify-write below must not interleave with another
	// mutation to the same owner's notes.
	unlock := s.locks.acquire(sess.OwnerKey())
	defer unlock()

	n, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(n)
	n.UpdatedAt = s.now().UTC()
	n.PendingSync = sess.Authenticated()

	if err := s.repo.Put(ctx, n); err != nil {
		return nil, fmt.Errorf("saving note: %w", err)
	}
	s.syncer.TriggerSync(sess)
	return n, nil
}

func (s *noteService) Remove(ctx context.Context, sess session.Session, id string) error {
	unlock := s.locks.acquire(sess.OwnerKey())
	if err := s.repo.SoftDelete(ctx, sess.OwnerKey(), id, s.now().UTC()); err != nil {
		unlock()
		return fmt.Errorf("deleting note: %w", err)
	}
	unlock()
	s.syncer.TriggerNoteDelete(sess, id)
	s.syncer.TriggerSync(sess)
	return nil
}

func (s *noteService) TogglePin(ctx context.Context, sess session.Session, id string) (*models.Note, error) {
	n, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	pinned := !n.IsPinned
	return s.Update(ctx, sess, id, models.NotePatch{IsPinned: &pinned})
}

func (s *noteService) ToggleArchive(ctx context.Context, sess session.Session, id string) (*models.Note, error) {
	n, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	archived := !n.IsArchived
	return s.Update(ctx, sess, id, models.NotePatch{IsArchived: &archived})
}

func (s *noteService) Lock(ctx context.Context, sess session.Session, id, pin string) error {
	if len(pin) < 4 {
		return fmt.Errorf("%w: PIN must be at least 4 characters", common.ErrValidation)
	}
	locked := true
	hash := cryptox.HashPIN(pin)
	_, err := s.Update(ctx, sess, id, models.NotePatch{IsLocked: &locked, LockPINHash: &hash})
	return err
}

func (s *noteService) Unlock(ctx context.Context, sess session.Session, id, pin string) error {
	ok, err := s.VerifyPIN(ctx, sess, id, pin)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrUnauthorized
	}
	locked := false
	hash := ""
	_, err = s.Update(ctx, sess, id, models.NotePatch{IsLocked: &locked, LockPINHash: &hash})
	return err
}

func (s *noteService) VerifyPIN(ctx context.Context, sess session.Session, id, pin string) (bool, error) {
	n, err := s.Get(ctx, sess, id)
	if err != nil {
		return false, err
	}
	if !n.IsLocked || n.LockPINHash == "" {
		return true, nil
	}
	return cryptox.VerifyPIN(pin, n.LockPINHash), nil
}
