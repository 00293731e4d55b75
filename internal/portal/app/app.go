package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suntowerrwa/portal/internal/portal/audit"
	httpapi "github.com/suntowerrwa/portal/internal/portal/http"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/internal/portal/storage"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/internal/portal/store/drivers/sqlite"
	"github.com/suntowerrwa/portal/pkg/jwtx"
	"github.com/suntowerrwa/portal/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the portal service together: store, signing keys,
// services, and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   jwtx.Signer
	keys     *jwtx.KeySet
	uploader storage.Uploader

	authService         *service.AuthService
	adminService        *service.AdminService
	profileService      *service.ProfileService
	registrationService *service.RegistrationService
	projectService      *service.ProjectService
	expenseService      *service.ExpenseService
	noticeService       *service.NoticeService
	messageService      *service.MessageService
	committeeService    *service.CommitteeService
	documentService     *service.DocumentService
	auditService        *service.AuditService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "portal",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, keys, err := InitSigningKeys(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.signer = signer
	app.keys = keys

	if err := app.initStorage(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("portal starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the HTTP server, the background sweeper, and the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down portal...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("portal stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initStorage() error {
	switch app.cfg.StorageBackend {
	case "s3":
		app.uploader = storage.NewS3Uploader(storage.S3Config{
			Endpoint: app.cfg.S3Endpoint,
			Region:   app.cfg.S3Region,
			Bucket:   app.cfg.S3Bucket,
			KeyID:    app.cfg.S3KeyID,
			Secret:   app.cfg.S3Secret,
		})
		app.logger.Info("document storage: s3", "bucket", app.cfg.S3Bucket)
	case "fs":
		up, err := storage.NewFSUploader(app.cfg.StorageDir, app.cfg.StorageBaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize file storage: %w", err)
		}
		app.uploader = up
		app.logger.Info("document storage: filesystem", "dir", app.cfg.StorageDir)
	default:
		return fmt.Errorf("unknown storage backend %q", app.cfg.StorageBackend)
	}
	return nil
}

func (app *Application) initServices() {
	recorder := audit.NewRecorder(app.db)

	app.authService = &service.AuthService{
		Signer:     app.signer,
		Store:      app.db,
		Audit:      recorder,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.adminService = &service.AdminService{Store: app.db, Audit: recorder}
	app.profileService = &service.ProfileService{Store: app.db, Audit: recorder}
	app.registrationService = &service.RegistrationService{Store: app.db}
	app.projectService = &service.ProjectService{Store: app.db, Audit: recorder}
	app.expenseService = &service.ExpenseService{Store: app.db, Audit: recorder}
	app.noticeService = &service.NoticeService{Store: app.db, Audit: recorder}
	app.messageService = &service.MessageService{Store: app.db}
	app.committeeService = &service.CommitteeService{Store: app.db}
	app.documentService = &service.DocumentService{
		Store:    app.db,
		Uploader: app.uploader,
		Audit:    recorder,
	}
	app.auditService = &service.AuditService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.SweepInterval,
	)
}

func (app *Application) initHTTP() {
	verifier := jwtx.NewVerifierEdDSA(app.keys, app.cfg.Issuer)

	router := httpapi.NewRouter(
		app.keys,
		verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.AdminService = app.adminService
	router.ProfileService = app.profileService
	router.RegistrationService = app.registrationService
	router.ProjectService = app.projectService
	router.ExpenseService = app.expenseService
	router.NoticeService = app.noticeService
	router.MessageService = app.messageService
	router.CommitteeService = app.committeeService
	router.DocumentService = app.documentService
	router.AuditService = app.auditService
	router.ApplyRoutes()

	// The fs backend serves uploaded files straight off disk.
	if app.cfg.StorageBackend == "fs" {
		prefix := app.cfg.StorageBaseURL + "/"
		router.Mux.Handle("GET "+prefix,
			http.StripPrefix(prefix, http.FileServer(http.Dir(app.cfg.StorageDir))))
	}

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
