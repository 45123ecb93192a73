package app

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/haguru/bugtracker/config"
	"github.com/haguru/bugtracker/internal/auth"
	"github.com/haguru/bugtracker/internal/bugservice"
	"github.com/haguru/bugtracker/internal/health"
	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/metrics"
	"github.com/haguru/bugtracker/internal/middleware"
	mongoRepo "github.com/haguru/bugtracker/internal/repository/mongo"
	postgresRepo "github.com/haguru/bugtracker/internal/repository/postgres"
	"github.com/haguru/bugtracker/internal/routes"
	"github.com/haguru/bugtracker/internal/server"
	"github.com/haguru/bugtracker/internal/userservice"
	"github.com/haguru/bugtracker/pkg/databases/mongo"
	"github.com/haguru/bugtracker/pkg/databases/postgres"
	pkgmetrics "github.com/haguru/bugtracker/pkg/metrics"
	"github.com/haguru/bugtracker/pkg/zerolog"
)

var (
	StartupTimeout  = 30 * time.Second
	ShutdownTimeout = 15 * time.Second
)

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server     interfaces.Server
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	db         interfaces.DBClient
	monitor    *health.Monitor
	privateKey *ecdsa.PrivateKey
}

type repositories struct {
	users interfaces.UserRepository
	bugs  interfaces.BugRepository
	roles interfaces.RoleRepository
}

// NewApp creates and configures a new App instance.
func NewApp(configPath string) (*App, error) {
	validator := structValidator.New()

	cfg, err := config.LoadConfig(configPath, validator)
	if err != nil {
		return nil, err
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), StartupTimeout)
	defer cancel()

	metricsInstance := pkgmetrics.NewMetrics(cfg.ServiceName)
	metrics.RegisterServiceMetrics(metricsInstance)

	if err := app.initializePrivateKey(); err != nil {
		return nil, fmt.Errorf("failed to initialize private key: %w", err)
	}

	app.db, err = app.initializeDBClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database client: %w", err)
	}

	if err := app.initializeServices(ctx, validator, metricsInstance); err != nil {
		return nil, err
	}

	return app, nil
}

// initializeServices builds everything that sits on the connected database.
// The database is disconnected again when any step fails.
func (app *App) initializeServices(ctx context.Context, validator *structValidator.Validate, metricsInstance interfaces.Metrics) (err error) {
	defer func() {
		if err != nil {
			app.disconnect()
		}
	}()

	cfg := app.Config
	logger := app.Logger

	repos, err := initializeRepositories(cfg.Database.Type, app.db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}
	if err := app.prepareStorage(ctx, repos); err != nil {
		return err
	}

	roleCache, err := auth.NewRoleCache(repos.roles, cfg.Auth.RoleCacheSize, metricsInstance)
	if err != nil {
		return fmt.Errorf("failed to initialize role cache: %w", err)
	}
	tokenIssuer, err := auth.NewTokenIssuer(roleCache, app.privateKey, cfg.Auth.TokenTTL, component(logger, "auth"))
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	app.monitor = health.NewMonitor(app.db, metricsInstance, component(logger, "health"), cfg.Health.PingTimeout)

	route := routes.NewRoute(
		metricsInstance,
		userservice.NewUserService(repos.users, component(logger, "userservice")),
		bugservice.NewBugService(repos.bugs, component(logger, "bugservice")),
		tokenIssuer,
		app.monitor,
		validator,
		component(logger, "routes"),
		routes.Options{
			CookieName:   cfg.Auth.CookieName,
			CookieSecure: cfg.Auth.CookieSecure,
			TokenTTL:     tokenIssuer.TTL(),
			Enforce:      cfg.Auth.Enforce,
			RateLimiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
		},
	)

	serverInstance := server.NewServer(cfg.Host, cfg.Port, logger)
	serverInstance.Use(
		middleware.MetricsMiddleware(metricsInstance),
		middleware.AuthMiddleware(cfg.Auth.CookieName, tokenIssuer.PublicKey(), logger),
	)
	if err := route.RegisterRoutes(serverInstance); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}
	app.Server = serverInstance

	return nil
}

// Run starts the health monitor and the server, and blocks until SIGINT or
// SIGTERM, then shuts everything down.
func (app *App) Run() error {
	if err := app.monitor.Start(app.Config.Health.PingSchedule); err != nil {
		return fmt.Errorf("failed to start health monitor: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Server.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serveErr:
		runErr = err
	case <-ctx.Done():
		app.Logger.Info("Shutdown signal received")
	}

	return errors.Join(runErr, app.shutdown())
}

func (app *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := app.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down server: %w", err))
	}
	app.monitor.Stop()
	if err := app.db.Disconnect(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to disconnect database: %w", err))
	}
	app.Logger.Info("Shutdown complete")
	return errors.Join(errs...)
}

// disconnect releases the database client after a failed startup.
func (app *App) disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := app.db.Disconnect(ctx); err != nil {
		app.Logger.Error("Failed to disconnect database", "error", err)
	}
}

func component(logger interfaces.Logger, name string) interfaces.Logger {
	return logger.WithContext(map[string]interface{}{"component": name})
}

func (app *App) initializeDBClient(ctx context.Context) (interfaces.DBClient, error) {
	var dbClient interfaces.DBClient
	var err error

	switch app.Config.Database.Type {
	case config.DatabaseTypeMongo:
		dbClient, err = mongo.NewMongoDB(&app.Config.Database.MongoDB, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}

	case config.DatabaseTypePostgres:
		dbClient = postgres.NewPostgresDatabaseClient(&app.Config.Database.Postgres, app.Logger)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}

	if err = dbClient.Connect(ctx, app.Config.DSN()); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", app.Config.Database.Type, err)
	}

	return dbClient, nil
}

func initializeRepositories(dbType string, dbClient interfaces.DBClient) (*repositories, error) {
	repos := &repositories{}
	var err error

	switch dbType {
	case config.DatabaseTypeMongo:
		if repos.users, err = mongoRepo.NewUserRepository(dbClient); err != nil {
			return nil, err
		}
		if repos.bugs, err = mongoRepo.NewBugRepository(dbClient); err != nil {
			return nil, err
		}
		if repos.roles, err = mongoRepo.NewRoleRepository(dbClient); err != nil {
			return nil, err
		}

	case config.DatabaseTypePostgres:
		if repos.users, err = postgresRepo.NewUserRepository(dbClient); err != nil {
			return nil, err
		}
		if repos.bugs, err = postgresRepo.NewBugRepository(dbClient); err != nil {
			return nil, err
		}
		if repos.roles, err = postgresRepo.NewRoleRepository(dbClient); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	return repos, nil
}

// prepareStorage creates indices or tables and seeds the configured roles.
func (app *App) prepareStorage(ctx context.Context, repos *repositories) error {
	if err := repos.users.EnsureIndices(ctx); err != nil {
		return fmt.Errorf("failed to ensure user indices: %w", err)
	}
	if err := repos.bugs.EnsureIndices(ctx); err != nil {
		return fmt.Errorf("failed to ensure bug indices: %w", err)
	}
	if err := repos.roles.EnsureIndices(ctx); err != nil {
		return fmt.Errorf("failed to ensure role indices: %w", err)
	}

	for _, role := range app.Config.Roles {
		if err := repos.roles.EnsureRole(ctx, role); err != nil {
			return fmt.Errorf("failed to seed role %q: %w", role.Name, err)
		}
	}
	app.Logger.Info("Storage ready", "database", app.Config.Database.Type, "roles", len(app.Config.Roles))
	return nil
}

func (app *App) initializePrivateKey() error {
	if app.Config.PrivateKeyPath == "" {
		return fmt.Errorf("private key path is not provided in the configuration")
	}

	privateKey, created, err := auth.LoadOrCreateECDSAPrivateKey(app.Config.PrivateKeyPath, app.Config.Auth.GenerateKey)
	if err != nil {
		return fmt.Errorf("failed to load private key: %w", err)
	}
	if created {
		app.Logger.Warn("Generated a new private key", "path", app.Config.PrivateKeyPath)
	}

	app.privateKey = privateKey
	return nil
}
