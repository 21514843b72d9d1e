// Package server initializes and runs the sync backend: database, HTTP
// endpoint, and graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Anandrajbgp/Noteflow/internal/logging"
	"github.com/Anandrajbgp/Noteflow/internal/server/config"
	"github.com/Anandrajbgp/Noteflow/internal/server/httpapi"
	"github.com/Anandrajbgp/Noteflow/internal/server/migrations"
	"github.com/Anandrajbgp/Noteflow/internal/server/repositories/notes"
	"github.com/Anandrajbgp/Noteflow/internal/server/repositories/tasks"
	userrepo "github.com/Anandrajbgp/Noteflow/internal/server/repositories/users"
	"github.com/Anandrajbgp/Noteflow/internal/server/users"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *http.Server
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	secret := []byte(cfg.SecretKey)
	userSvc := users.NewService(userrepo.NewPostgresRepository(db), secret, cfg.TokenValidityDuration)
	api := httpapi.NewServer(logger, userSvc, notes.NewPostgresRepository(db), tasks.NewPostgresRepository(db), secret)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		httpServer: &http.Server{
			Addr:    cfg.EndpointAddr,
			Handler: api.Router(),
		},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}
	return app.db.Close()
}
