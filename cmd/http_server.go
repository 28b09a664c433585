package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/aicontext"
	"github.com/frahmantamala/toolbox/internal/assistant"
	"github.com/frahmantamala/toolbox/internal/auth"
	authPostgres "github.com/frahmantamala/toolbox/internal/auth/postgres"
	"github.com/frahmantamala/toolbox/internal/bootstrap"
	"github.com/frahmantamala/toolbox/internal/core/events"
	"github.com/frahmantamala/toolbox/internal/dashboard"
	"github.com/frahmantamala/toolbox/internal/functionalarea"
	functionalareaPostgres "github.com/frahmantamala/toolbox/internal/functionalarea/postgres"
	"github.com/frahmantamala/toolbox/internal/permission"
	permissionPostgres "github.com/frahmantamala/toolbox/internal/permission/postgres"
	"github.com/frahmantamala/toolbox/internal/reference"
	referencePostgres "github.com/frahmantamala/toolbox/internal/reference/postgres"
	"github.com/frahmantamala/toolbox/internal/role"
	rolePostgres "github.com/frahmantamala/toolbox/internal/role/postgres"
	"github.com/frahmantamala/toolbox/internal/screens"
	"github.com/frahmantamala/toolbox/internal/task"
	taskPostgres "github.com/frahmantamala/toolbox/internal/task/postgres"
	"github.com/frahmantamala/toolbox/internal/transport"
	"github.com/frahmantamala/toolbox/internal/transport/rest"
	"github.com/frahmantamala/toolbox/internal/transport/swagger"
	"github.com/frahmantamala/toolbox/internal/user"
	userPostgres "github.com/frahmantamala/toolbox/internal/user/postgres"
	"github.com/frahmantamala/toolbox/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config      *internal.Config
	DB          *sqlx.DB
	Gorm        *gorm.DB
	Router      *chi.Mux
	Logger      *slog.Logger
	EventBus    *events.EventBus
	Resolver    *permission.Resolver
	Screens     *screens.Store
	Initializer *bootstrap.Initializer
	Coordinator *aicontext.Coordinator
	Handlers    rest.Handlers
	RBAC        *auth.RBACAuthorization
	closers     []func() error
}

// Close releases the cache client and the database pool.
func (d *Dependencies) Close() {
	for _, c := range d.closers {
		if err := c(); err != nil {
			d.Logger.Error("shutdown close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if deps.Config.Bootstrap.SeedOnStartup {
		if err := deps.Initializer.Run(context.Background()); err != nil {
			deps.Logger.Error("startup seeding failed", "error", err)
			deps.Close()
			os.Exit(1)
		}
	}

	if _, err := swagger.LoadSpec(context.Background(), swagger.SpecPath); err != nil {
		deps.Logger.Warn("openapi document unavailable", "error", err)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.EventBus.Wait()
		deps.Close()
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.Close()
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Config, deps.RBAC, deps.Handlers, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.App.Env, config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	deps := &Dependencies{
		Config:   config,
		DB:       db,
		Gorm:     gormDB,
		Router:   chi.NewRouter(),
		Logger:   lg,
		EventBus: events.NewEventBus(lg),
	}
	registerEventHandlers(deps.EventBus, lg)

	if err := wireServices(deps); err != nil {
		deps.Close()
		return nil, err
	}
	return deps, nil
}

func wireServices(deps *Dependencies) error {
	cfg, lg, bus := deps.Config, deps.Logger, deps.EventBus
	base := transport.NewBaseHandler(lg)

	roleRepo := rolePostgres.NewRoleRepository(deps.Gorm)
	permissionRepo := permissionPostgres.NewPermissionRepository(deps.Gorm)

	deps.Resolver = permission.NewResolver(permissionRepo, lg)
	deps.RBAC = auth.NewRBACAuthorization(deps.Resolver, lg)
	deps.Screens = screens.Load(cfg.Screens.LoadDefaultConfig, cfg.Screens.ConfigFile, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.Gorm), tokenGen, cfg.Security.BCryptCost)

	roleService := role.NewService(roleRepo, lg)
	userService := user.NewService(userPostgres.NewUserRepository(deps.Gorm), authService, lg)
	permissionService := permission.NewService(permissionRepo, roleRepo, bus, lg)
	areaService := functionalarea.NewService(functionalareaPostgres.NewFunctionalAreaRepository(deps.Gorm), deps.Resolver, bus, lg)
	referenceService := reference.NewService(referencePostgres.NewReferenceRepository(deps.Gorm), deps.Resolver, bus, lg)
	taskService := task.NewService(taskPostgres.NewTaskRepository(deps.Gorm), deps.Resolver, lg, time.Now)
	dashboardService := dashboard.NewService(deps.Screens, deps.Resolver, lg)

	deps.Initializer = bootstrap.NewInitializer(bootstrap.Dependencies{
		Roles:           roleService,
		Users:           userService,
		FunctionalAreas: areaService,
		Permissions:     permissionService,
		Screens:         deps.Screens,
		SamplePassword:  cfg.Bootstrap.DefaultPassword,
	}, lg)

	coordinator, err := newCoordinator(deps)
	if err != nil {
		return err
	}
	deps.Coordinator = coordinator

	defaultProvider, err := assistant.ParseProvider(cfg.AI.DefaultProvider)
	if err != nil {
		lg.Warn("unknown default ai provider, using CLAUDE", "provider", cfg.AI.DefaultProvider)
		defaultProvider = assistant.ProviderClaude
	}
	assistantService := assistant.NewService(assistant.NewChatModels(cfg.AI), coordinator, lg)
	for _, p := range assistant.Providers() {
		lg.Info("ai provider", "provider", p, "available", assistantService.Available(p))
	}

	deps.Handlers = rest.Handlers{
		Auth:           auth.NewHandler(base, authService),
		Users:          user.NewHandler(base, userService),
		Roles:          role.NewHandler(base, roleService),
		Permissions:    permission.NewHandler(base, permissionService, deps.Resolver),
		FunctionalArea: functionalarea.NewHandler(base, areaService),
		Reference:      reference.NewHandler(base, referenceService),
		Tasks:          task.NewHandler(base, taskService),
		Dashboard:      dashboard.NewHandler(base, dashboardService),
		Assistant:      assistant.NewHandler(base, assistantService, coordinator, defaultProvider),
	}
	return nil
}

// newCoordinator wires the project context sources. The Redis cache is
// optional; without a URL every request gathers fresh context.
func newCoordinator(deps *Dependencies) (*aicontext.Coordinator, error) {
	cfg, lg := deps.Config, deps.Logger

	root := cfg.AI.ProjectRoot
	if root == "" {
		root = "."
	}
	code, err := aicontext.NewCodeAnalyzer(root, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to open project root: %w", err)
	}
	schema := aicontext.NewSchemaInspector(deps.DB, lg)

	var cache aicontext.Cache
	if cfg.Cache.RedisURL != "" {
		redisCache, err := aicontext.NewRedisCache(cfg.Cache.RedisURL, cfg.Cache.ContextTTL, lg)
		if err != nil {
			lg.Warn("context cache disabled", "error", err)
		} else {
			cache = redisCache
			deps.closers = append(deps.closers, redisCache.Close)
		}
	}

	coordinator := aicontext.NewCoordinator(
		code,
		schema,
		aicontext.NewGitInspector(root, lg),
		aicontext.NewQueryGate(schema, lg),
		cache,
		lg,
	)
	coordinator.InvalidateOn(deps.EventBus, events.SchemaEventTypes...)
	return coordinator, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
