package reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/kv"
	"github.com/Anandrajbgp/Noteflow/internal/client/models"
)

const journalKey = "reminders:fired"

// retention is how long a fired entry stays in the journal. One day covers
// every daily-or-slower repeat cycle; after that the same task may fire
// again.
const retention = 24 * time.Hour

// Journal records which reminders have already fired, persisted in the
// metadata table so the record survives app restarts.
type Journal struct {
	kv  kv.Repository
	now func() time.Time
}

func NewJournal(kv kv.Repository) *Journal {
	return &Journal{kv: kv, now: time.Now}
}

func (j *Journal) load(ctx context.Context) (map[string]time.Time, error) {
	raw, err := j.kv.Get(ctx, journalKey)
	if err != nil {
		return nil, fmt.Errorf("reading reminder journal: %w", err)
	}
	entries := make(map[string]string)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &entries); err != nil {
			// A corrupt journal is replaced, not fatal.
			return make(map[string]time.Time), nil
		}
	}
	out := make(map[string]time.Time, len(entries))
	cutoff := j.now().Add(-retention)
	for id, stamp := range entries {
		at, err := models.ParseTime(stamp)
		if err != nil || at.Before(cutoff) {
			continue
		}
		out[id] = at
	}
	return out, nil
}

func (j *Journal) store(ctx context.Context, entries map[string]time.Time) error {
	wire := make(map[string]string, len(entries))
	for id, at := range entries {
		wire[id] = models.FormatTime(at)
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("encoding reminder journal: %w", err)
	}
	return j.kv.Set(ctx, journalKey, raw)
}

// MarkFired records that the task's reminder fired. Expired entries are
// pruned on the way through.
func (j *Journal) MarkFired(ctx context.Context, taskID string) error {
	entries, err := j.load(ctx)
	if err != nil {
		return err
	}
	entries[taskID] = j.now()
	return j.store(ctx, entries)
}

// Fired reports whether the task's reminder fired within the retention
// window.
func (j *Journal) Fired(ctx context.Context, taskID string) (bool, error) {
	entries, err := j.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := entries[taskID]
	return ok, nil
}

// Clear drops the whole journal.
func (j *Journal) Clear(ctx context.Context) error {
	return j.kv.Delete(ctx, journalKey)
}
