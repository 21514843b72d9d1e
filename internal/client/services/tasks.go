package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Anandrajbgp/Noteflow/internal/client/models"
	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/tasks"
	"github.com/Anandrajbgp/Noteflow/internal/client/session"
	"github.com/Anandrajbgp/Noteflow/internal/common"
)

// TaskDraft carries the user-editable fields of a new task.
type TaskDraft struct {
	Title                 string
	Description           string
	Date                  string // YYYY-MM-DD, optional
	Time                  string // HH:MM, optional
	Frequency             models.Frequency
	Starred               bool
	ReminderEnabled       bool
	ReminderOffsetMinutes int
	ListID                *int64
	ListOrder             int
}

// TaskService owns every task mutation, local-first with a background sync
// trigger after each write.
type TaskService interface {
	List(ctx context.Context, sess session.Session) ([]models.Task, error)
	Get(ctx context.Context, sess session.Session, id string) (*models.Task, error)
	Create(ctx context.Context, sess session.Session, draft TaskDraft) (*models.Task, error)
	Update(ctx context.Context, sess session.Session, id string, patch models.TaskPatch) (*models.Task, error)
	Remove(ctx context.Context, sess session.Session, id string) error
	ToggleComplete(ctx context.Context, sess session.Session, id string) (*models.Task, error)
	ToggleStar(ctx context.Context, sess session.Session, id string) (*models.Task, error)
}

type taskService struct {
	repo   tasks.Repository
	syncer Syncer
	locks  *ownerLocks
	now    func() time.Time
}

func NewTaskService(repo tasks.Repository, syncer Syncer) TaskService {
	return &taskService{repo: repo, syncer: syncer, locks: newOwnerLocks(), now: time.Now}
}

func validateSchedule(date, timeOfDay string) error {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
		}
	}
	if timeOfDay != "" {
		if _, err := time.Parse("15:04", timeOfDay); err != nil {
			return fmt.Errorf("%w: time must be HH:MM", common.ErrValidation)
		}
	}
	return nil
}

func (s *taskService) List(ctx context.Context, sess session.Session) ([]models.Task, error) {
	return s.repo.GetActive(ctx, sess.OwnerKey())
}

func (s *taskService) Get(ctx context.Context, sess session.Session, id string) (*models.Task, error) {
	t, err := s.repo.GetByID(ctx, sess.OwnerKey(), id)
	if err != nil {
		return nil, err
	}
	if t.IsDeleted {
		return nil, common.ErrNotFound
	}
	return t, nil
}

func (s *taskService) Create(ctx context.Context, sess session.Session, draft TaskDraft) (*models.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("%w: task needs a title", common.ErrValidation)
	}
	if draft.Frequency == "" {
		draft.Frequency = models.FrequencyOnce
	}
	if !draft.Frequency.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", common.ErrValidation, draft.Frequency)
	}
	if err := validateSchedule(draft.Date, draft.Time); err != nil {
		return nil, err
	}
	if draft.ReminderOffsetMinutes < 0 {
		return nil, fmt.Errorf("%w: reminder offset cannot be negative", common.ErrValidation)
	}

	now := s.now().UTC()
	t := &models.Task{
		Record: models.Record{
			ID:          uuid.NewString(),
			OwnerKey:    sess.OwnerKey(),
			CreatedAt:   now,
			UpdatedAt:   now,
			PendingSync: sess.Authenticated(),
		},
		Title:                 draft.Title,
		Description:           draft.Description,
		Date:                  draft.Date,
		Time:                  draft.Time,
		Frequency:             draft.Frequency,
		Starred:               draft.Starred,
		ReminderEnabled:       draft.ReminderEnabled,
		ReminderOffsetMinutes: draft.ReminderOffsetMinutes,
		ListID:                draft.ListID,
		ListOrder:             draft.ListOrder,
	}

	unlock := s.locks.acquire(sess.OwnerKey())
	defer unlock()
	if err := s.repo.Put(ctx, t); err != nil {
		return nil, fmt.Errorf("saving task: %w", err)
	}
	s.syncer.TriggerSync(sess)
	return t, nil
}

func (s *taskService) Update(ctx context.Context, sess session.Session, id string, patch models.TaskPatch) (*models.Task, error) {
	// The read-modify-write below must not interleave with another
	// mutation to the same owner's tasks.
	unlock := s.locks.acquire(sess.OwnerKey())
	defer unlock()

	t, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(t)
	if !t.Frequency.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", common.ErrValidation, t.Frequency)
	}
	if err := validateSchedule(t.Date, t.Time); err != nil {
		return nil, err
	}
	t.UpdatedAt = s.now().UTC()
	t.PendingSync = sess.Authenticated()

	if err := s.repo.Put(ctx, t); err != nil {
		return nil, fmt.Errorf("saving task: %w", err)
	}
	s.syncer.TriggerSync(sess)
	return t, nil
}

func (s *taskService) Remove(ctx context.Context, sess session.Session, id string) error {
	unlock := s.locks.acquire(sess.OwnerKey())
	if err := s.repo.SoftDelete(ctx, sess.OwnerKey(), id, s.now().UTC()); err != nil {
		unlock()
		return fmt.Errorf("deleting task: %w", err)
	}
	unlock()
	s.syncer.TriggerTaskDelete(sess, id)
	s.syncer.TriggerSync(sess)
	return nil
}

func (s *taskService) ToggleComplete(ctx context.Context, sess session.Session, id string) (*models.Task, error) {
	t, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	done := !t.Completed
	return s.Update(ctx, sess, id, models.TaskPatch{Completed: &done})
}

func (s *taskService) ToggleStar(ctx context.Context, sess session.Session, id string) (*models.Task, error) {
	t, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	starred := !t.Starred
	return s.Update(ctx, sess, id, models.TaskPatch{Starred: &starred})
}
