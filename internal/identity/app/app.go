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

	"github.com/aussiebroadwan/identity/internal/identity/cache"
	httpapi "github.com/aussiebroadwan/identity/internal/identity/http"
	"github.com/aussiebroadwan/identity/internal/identity/mail"
	"github.com/aussiebroadwan/identity/internal/identity/photos"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the identity service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	redis      *redis.Client // nil unless CACHE_BACKEND=redis
	accounts   *cache.Repository
	registry   *prometheus.Registry
	dispatcher *service.Dispatcher
	photos     service.PhotoStore // nil when photo storage is not configured

	// Services
	tokenService      *service.TokenService
	gate              *service.Gate
	accountService    *service.AccountService
	invitationService *service.InvitationService
	bootstrapService  *service.BootstrapService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx := context.Background()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitSigningKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.keyManager = keyManager

	if err := app.initCache(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initNotifier(); err != nil {
		app.closeBackends()
		return nil, err
	}
	if err := app.initPhotos(ctx); err != nil {
		app.closeBackends()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		app.closeBackends()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start the notification worker
	app.dispatcher.Start()

	app.logger.Info("identity service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.dispatcher.Stop()
			app.closeBackends()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Flush queued notifications before the mailer goes away
	app.dispatcher.Stop()

	if err := app.closeBackends(); err != nil {
		return err
	}

	app.logger.Info("identity service stopped")
	return nil
}

func (app *Application) closeBackends() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate",
		app.cfg.DatabaseFile,
	)
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

// initCache selects the Lookup Cache backend and wraps it in the Repository
// every account read and write goes through.
func (app *Application) initCache(ctx context.Context) error {
	var backend cache.Cache

	switch app.cfg.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("failed to connect to redis at %s: %w", app.cfg.RedisAddr, err)
		}

		app.redis = client
		backend = cache.NewRedisCache(client)
		app.logger.Info("account cache backed by redis", "addr", app.cfg.RedisAddr, "db", app.cfg.RedisDB)

	case "memory", "":
		backend = cache.NewMemoryCache()
		app.logger.Info("account cache held in memory")

	default:
		return fmt.Errorf("unknown cache backend %q", app.cfg.CacheBackend)
	}

	app.accounts = cache.NewRepository(app.db, backend, cache.NewMetrics(app.registry))
	return nil
}

// initNotifier builds the mailer and the background dispatcher in front of it
func (app *Application) initNotifier() error {
	var mailer service.Mailer

	switch app.cfg.MailMode {
	case "smtp":
		m, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.MailFrom,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize smtp mailer: %w", err)
		}
		mailer = m
		app.logger.Info("mail delivered over smtp", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)

	case "log", "":
		mailer = mail.LogMailer{Logger: app.logger.With("component", "mail")}
		app.logger.Warn("mail is written to the log only")

	default:
		return fmt.Errorf("unknown mail mode %q", app.cfg.MailMode)
	}

	app.dispatcher = service.NewDispatcher(mailer, app.logger.With("component", "dispatcher"), service.DispatcherOptions{
		Rate:       app.cfg.MailRate,
		Burst:      app.cfg.MailBurst,
		QueueSize:  app.cfg.MailQueueSize,
		Registerer: app.registry,
	})
	return nil
}

// initPhotos enables profile photos when a bucket is configured
func (app *Application) initPhotos(ctx context.Context) error {
	if app.cfg.S3Bucket == "" {
		app.logger.Info("photo storage disabled")
		return nil
	}

	bucket, err := photos.NewS3Store(ctx, photos.Config{
		Endpoint:  app.cfg.S3Endpoint,
		Region:    app.cfg.S3Region,
		Bucket:    app.cfg.S3Bucket,
		AccessKey: app.cfg.S3AccessKey,
		SecretKey: app.cfg.S3SecretKey,
		URLTTL:    app.cfg.PhotoURLTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize photo storage: %w", err)
	}
	app.photos = bucket
	app.logger.Info("photo storage enabled", "bucket", app.cfg.S3Bucket, "endpoint", app.cfg.S3Endpoint)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	app.tokenService = &service.TokenService{
		KeyManager: app.keyManager,
		Issuer:     app.cfg.Issuer,
		TTL:        app.cfg.TokenTTL,
	}
	app.gate = &service.Gate{
		Tokens:   app.tokenService,
		Accounts: app.accounts,
	}

	app.accountService = &service.AccountService{
		Store:          app.db,
		Accounts:       app.accounts,
		Tokens:         app.tokenService,
		Hasher:         cryptox.NewPasswordHasher(pepper),
		Notifier:       app.dispatcher,
		Photos:         app.photos,
		BaseURL:        app.cfg.PublicBaseURL,
		ExportPageSize: app.cfg.ExportPageSize,
	}

	app.invitationService = &service.InvitationService{
		Store:    app.db,
		Notifier: app.dispatcher,
		BaseURL:  app.cfg.PublicBaseURL,
		PageSize: app.cfg.InvitationPageSize,
	}
	app.bootstrapService = &service.BootstrapService{
		Accounts: app.accountService,
		Token:    app.cfg.BootstrapToken,
	}
	if app.cfg.BootstrapToken != "" {
		app.logger.Info("bootstrap endpoint enabled")
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		BuildVersion,
		app.db,
		app.accounts,
		app.logger,
	)

	// Wire services to router
	router.Gate = app.gate
	router.AccountService = app.accountService
	router.InvitationService = app.invitationService
	router.BootstrapService = app.bootstrapService
	router.Gatherer = app.registry
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
