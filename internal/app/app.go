// Package app wires configuration, storage, services and the HTTP router into
// a runnable service registry.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sutram/service-registry/internal/api"
	"github.com/sutram/service-registry/internal/api/middleware"
	"github.com/sutram/service-registry/internal/api/web"
	"github.com/sutram/service-registry/internal/core/service"
	"github.com/sutram/service-registry/internal/infrastructure/config"
	"github.com/sutram/service-registry/internal/infrastructure/db/sqlite"
	"github.com/sutram/service-registry/internal/infrastructure/spreadsheet"
	"github.com/sutram/service-registry/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg *config.Config
	log zerolog.Logger
	db  *sqlite.DB

	auth    *service.AuthService
	records *service.RecordService
	imports *service.ImportService
}

// New opens and migrates the database and makes sure an account exists.
// Loggers come from the process logger, so logger.Init must run first. The
// caller must Close the returned App.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := sqlite.Open(ctx, cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.Migrate(ctx, logger.Component("migrations")); err != nil {
		db.Close()
		return nil, err
	}

	recordRepo := sqlite.NewRecordRepository(db)
	a := &App{
		cfg:     cfg,
		log:     logger.Get(),
		db:      db,
		auth:    service.NewAuthService(sqlite.NewUserRepository(db), logger.Component("auth")),
		records: service.NewRecordService(recordRepo, logger.Component("records")),
		imports: service.NewImportService(
			spreadsheet.NewReader(logger.Component("spreadsheet")),
			recordRepo,
			logger.Component("import"),
		),
	}

	if err := a.auth.Bootstrap(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// Auth exposes account operations to the operator CLI.
func (a *App) Auth() *service.AuthService { return a.auth }

// DB exposes the store for schema inspection.
func (a *App) DB() *sqlite.DB { return a.db }

func (a *App) Close() error {
	return a.db.Close()
}

// Router builds the HTTP handler with every route registered.
func (a *App) Router() (*echo.Echo, error) {
	renderer, err := web.NewRenderer(a.cfg.Paths.ResourceDir)
	if err != nil {
		return nil, err
	}

	return api.NewRouter(api.Deps{
		AuthService:   a.auth,
		RecordService: a.records,
		ImportService: a.imports,
		Exporter:      spreadsheet.NewWriter(),
		Renderer:      renderer,
		DB:            a.db,
		Session: middleware.SessionConfig{
			Secret:     a.cfg.Session.Secret,
			TTL:        a.cfg.Session.TTL,
			RememberMe: a.cfg.RememberMe(),
			Secure:     a.cfg.Session.CookieSecure,
		},
		Logger: logger.Component("http"),
	}), nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	e, err := a.Router()
	if err != nil {
		return err
	}

	if a.cfg.Session.SecretGenerated {
		a.log.Warn().Msg("SESSION_SECRET not set; using a random secret, sessions end on restart")
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().
			Str("addr", a.cfg.Addr()).
			Str("db", a.cfg.DBPath()).
			Msg("starting server")
		if err := e.Start(a.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
