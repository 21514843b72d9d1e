// Package client assembles the on-device half of Noteflow: local storage,
// the backend gateway, and the services the UI layer calls. There is no
// standalone client binary; the host application embeds App.
package client

import (
	"context"
	"fmt"

	"github.com/Anandrajbgp/Noteflow/internal/client/config"
	"github.com/Anandrajbgp/Noteflow/internal/client/gateway"
	"github.com/Anandrajbgp/Noteflow/internal/client/prefs"
	"github.com/Anandrajbgp/Noteflow/internal/client/reminders"
	"github.com/Anandrajbgp/Noteflow/internal/client/services"
	"github.com/Anandrajbgp/Noteflow/internal/client/session"
	"github.com/Anandrajbgp/Noteflow/internal/client/storage"
	"github.com/Anandrajbgp/Noteflow/internal/common"
	"github.com/Anandrajbgp/Noteflow/internal/logging"
)

// App is the composition root for the client. The host constructs one App
// per device database, logs in or stays local, and calls the services.
type App struct {
	Auth    services.AuthService
	Notes   services.NoteService
	Tasks   services.TaskService
	Sync    services.SyncService
	Prefs   *prefs.Store
	Journal *reminders.Journal
	Gateway gateway.Client
	Sess    session.Session

	repos  *storage.Repositories
	cfg    *config.Config
	logger logging.Logger
}

// New opens the local database, applies migrations, and wires the service
// graph. The returned App starts with the unauthenticated local session.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	repos, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening local storage: %w", err)
	}

	gw := gateway.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, logger)
	syncSvc := services.NewSyncService(gw, repos.Notes, repos.Tasks, logger)

	return &App{
		Auth:    services.NewAuthService(gw),
		Notes:   services.NewNoteService(repos.Notes, syncSvc),
		Tasks:   services.NewTaskService(repos.Tasks, syncSvc),
		Sync:    syncSvc,
		Prefs:   prefs.NewStore(repos.KV),
		Journal: reminders.NewJournal(repos.KV),
		Gateway: gw,
		Sess:    session.Local(),
		repos:   repos,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Login authenticates against the backend and switches the active session.
// Records created before authentication are handed over to the account so
// the next pass uploads them. When SyncOnStart is set, a background pass is
// kicked off immediately.
func (a *App) Login(ctx context.Context, username, password string) error {
	sess, err := a.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.repos.Notes.ReassignOwner(ctx, common.LocalOwnerKey, sess.OwnerKey()); err != nil {
		return fmt.Errorf("claiming local notes: %w", err)
	}
	if err := a.repos.Tasks.ReassignOwner(ctx, common.LocalOwnerKey, sess.OwnerKey()); err != nil {
		return fmt.Errorf("claiming local tasks: %w", err)
	}
	a.Sess = sess
	if a.cfg.SyncOnStart {
		a.Sync.TriggerSync(sess)
	}
	return nil
}

// Logout drops back to the local session. Records of the previous account
// stay on the device under its owner key.
func (a *App) Logout() {
	a.Sess = a.Auth.Logout()
}

// Unlink logs out and removes the account's records from the device. The
// backend copy is untouched; linking the account again restores it through
// a normal sync pass. A no-op on the local session.
func (a *App) Unlink(ctx context.Context) error {
	sess := a.Sess
	a.Logout()
	if !sess.Authenticated() {
		return nil
	}
	a.Sync.Await()
	return storage.WipeOwner(ctx, a.repos.DB, sess.OwnerKey())
}

// Close waits for in-flight background syncs and releases the database.
func (a *App) Close() error {
	a.Sync.Await()
	if err := a.Gateway.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing gateway", "error", err)
	}
	return a.repos.DB.Close()
}
