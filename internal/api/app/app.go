package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/hydrous-ai/hydrous/internal/api/http"
	"github.com/hydrous-ai/hydrous/internal/api/service"
	"github.com/hydrous-ai/hydrous/internal/api/storage/fs"
	"github.com/hydrous-ai/hydrous/internal/api/store"
	"github.com/hydrous-ai/hydrous/internal/api/store/drivers/sqlite"
	"github.com/hydrous-ai/hydrous/internal/api/store/kv"
	"github.com/hydrous-ai/hydrous/internal/api/store/kv/drivers/memory"
	kvredis "github.com/hydrous-ai/hydrous/internal/api/store/kv/drivers/redis"
	"github.com/hydrous-ai/hydrous/pkg/cryptox"
	"github.com/hydrous-ai/hydrous/pkg/jwtx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the API service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	revocation kv.KV

	authService         *service.AuthService
	blacklistService    *service.BlacklistService
	conversationService *service.ConversationService
	documentService     *service.DocumentService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized. The signing
// secret is validated here so a misconfigured deployment fails at startup,
// not on the first login.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "hydrous-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	signer := jwtx.NewHS256([]byte(cfg.JWTSecret))
	if err := signer.Validate(); err != nil {
		return nil, fmt.Errorf("jwt secret: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initRevocationStore(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	blobs, err := fs.NewStore(cfg.UploadDir)
	if err != nil {
		_ = app.db.Close()
		_ = app.revocation.Close()
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	app.initServices(signer)
	app.documentService.Blobs = blobs
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("api service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down api service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.revocation.Close(); err != nil {
		app.logger.Error("error closing revocation store", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initRevocationStore connects to Redis. With IGNORE_REDIS_ERRORS set a
// connection failure degrades to an in-process store instead of aborting
// startup; revocations then live only as long as the process.
func (app *Application) initRevocationStore() error {
	rd, err := kvredis.NewStore(app.cfg.RedisURL, app.cfg.RedisTimeout)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), app.cfg.RedisTimeout)
		defer cancel()
		err = rd.Ping(ctx)
		if err != nil {
			_ = rd.Close()
		}
	}
	if err != nil {
		if !app.cfg.IgnoreRedisErrors {
			return fmt.Errorf("failed to connect to revocation store: %w", err)
		}
		app.logger.Warn("revocation store unreachable, using in-process fallback", "error", err)
		app.revocation = memory.NewStore()
		return nil
	}

	app.revocation = rd
	app.logger.Info("revocation store connected")
	return nil
}

func (app *Application) initServices(signer *jwtx.HS256) {
	app.blacklistService = &service.BlacklistService{
		KV:         app.revocation,
		DefaultTTL: app.cfg.AccessTokenTTL,
	}

	app.authService = &service.AuthService{
		Store:     app.db,
		Blacklist: app.blacklistService,
		Signer:    signer,
		Issuer:    app.cfg.JWTIssuer,
		AccessTTL: app.cfg.AccessTokenTTL,
	}

	app.conversationService = &service.ConversationService{Store: app.db}
	app.documentService = &service.DocumentService{
		Store:         app.db,
		Conversations: app.conversationService,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.cfg.AllowedOrigins,
		app.db,
		app.revocation,
		app.authService,
		app.logger,
	)
	router.ConversationService = app.conversationService
	router.DocumentService = app.documentService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
