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

	"github.com/aussiebroadwan/renewal/internal/renewal/cache"
	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	httpapi "github.com/aussiebroadwan/renewal/internal/renewal/http"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/internal/renewal/store/drivers/postgres"
	"github.com/aussiebroadwan/renewal/internal/renewal/store/drivers/sqlite"
	"github.com/aussiebroadwan/renewal/pkg/jwtx"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

// BuildVersion is overridden at build time via -ldflags "-X ...BuildVersion=".
var BuildVersion = "v0.1.0"

// MigratingStore is a store that ships its own schema.
type MigratingStore interface {
	store.Store
	ApplyMigrations() error
}

// Application encapsulates the renewal service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	schema    *service.SchemaFlags
	redis     *redis.Client // nil without REDIS_URL
	plans     domain.Plans
	location  *time.Location
	keys      *jwtx.KeySet
	verifier  *jwtx.KeyVerifier
	refresher *KeyRefresher // nil for static keys

	// Services
	contractService     *service.ContractService
	dashboardService    *service.DashboardService
	rateService         *service.ExchangeRateService
	invitationService   *service.InvitationService
	organizationService *service.OrganizationService
	userService         *service.UserService
	guideService        *service.GuideService
	scheduler           *service.NotificationScheduler
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "renewal-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initPlans(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.location = domain.LoadLocation(cfg.Timezone)

	keys, verifier, refresher, err := InitAuthKeys(ctx, cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize verification keys: %w", err)
	}
	app.keys, app.verifier, app.refresher = keys, verifier, refresher

	if err := app.initRedis(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()
	if app.refresher != nil {
		app.refresher.Start()
	}

	app.logger.Info("renewal service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down renewal service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()
	if app.refresher != nil {
		app.refresher.Stop()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("renewal service stopped")
	return nil
}

// initDatabase opens the configured store, applies migrations when asked to
// and detects the optional decision columns.
func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if app.cfg.DatabaseMigrate {
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply database migrations: %w", err)
		}
		app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	}

	schema, err := service.DetectSchema(ctx, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to inspect database schema: %w", err)
	}
	app.schema = schema
	if !schema.Decisions() {
		app.logger.Warn("contract decision columns missing, keep falls back to marking contracts renewed")
	}
	return nil
}

// OpenStore opens the store named by DATABASE_DRIVER without migrating it.
func OpenStore(ctx context.Context, cfg Config) (MigratingStore, error) {
	if cfg.DatabaseDriver == "postgres" {
		db, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := sqlite.NewStore(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (app *Application) initPlans() error {
	app.plans = domain.DefaultPlans()
	if app.cfg.PlansFile == "" {
		return nil
	}

	data, err := os.ReadFile(app.cfg.PlansFile)
	if err != nil {
		return fmt.Errorf("failed to read plans file: %w", err)
	}
	plans, err := domain.ParsePlans(data)
	if err != nil {
		return err
	}
	app.plans = plans
	app.logger.Info("plans loaded", "file", app.cfg.PlansFile, "count", len(plans))
	return nil
}

func (app *Application) initRedis(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		app.logger.Info("REDIS_URL not set, using in-process exchange rate cache and log dispatcher")
		return nil
	}
	client, err := cache.NewClient(ctx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = client
	app.logger.Info("redis connected", "channel", app.cfg.NotificationChannel)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	var rateCache service.RateCache = &service.MemoryRateCache{}
	var dispatcher service.Dispatcher = service.LogDispatcher{Logger: app.logger}
	if app.redis != nil {
		rateCache = cache.NewRateCache(app.redis)
		dispatcher = cache.NewPublisher(app.redis, app.cfg.NotificationChannel)
	}

	app.rateService = service.NewExchangeRateService(
		app.cfg.ExchangeRateURL,
		rateCache,
		app.cfg.ExchangeRateTTL,
		app.cfg.ExchangeRateFallback,
	)

	app.contractService = &service.ContractService{
		Store:    app.db,
		Rates:    app.rateService,
		Plans:    app.plans,
		Schema:   app.schema,
		Location: app.location,
	}
	app.dashboardService = &service.DashboardService{
		Store:    app.db,
		Rates:    app.rateService,
		Schema:   app.schema,
		Location: app.location,
	}
	app.invitationService = &service.InvitationService{
		Store:     app.db,
		AcceptURL: app.cfg.InvitationAcceptURL,
	}
	app.organizationService = &service.OrganizationService{Store: app.db, Plans: app.plans}
	app.userService = &service.UserService{Store: app.db, Plans: app.plans}
	app.guideService = &service.GuideService{Store: app.db}
	app.scheduler = &service.NotificationScheduler{
		Store:      app.db,
		Plans:      app.plans,
		Dispatcher: dispatcher,
		Location:   app.location,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.InvitationRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.ContractService = app.contractService
	router.DashboardService = app.dashboardService
	router.RateProvider = app.rateService
	router.InvitationService = app.invitationService
	router.OrganizationService = app.organizationService
	router.UserService = app.userService
	router.GuideService = app.guideService
	router.Scheduler = app.scheduler
	router.Plans = app.plans
	router.Location = app.location
	router.CronSecret = CronSecretChecker(app.cfg, app.logger)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
