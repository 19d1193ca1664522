package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teampulse/teampulse/internal"
	"github.com/teampulse/teampulse/internal/auth"
	authPostgres "github.com/teampulse/teampulse/internal/auth/postgres"
	"github.com/teampulse/teampulse/internal/catalog"
	catalogPostgres "github.com/teampulse/teampulse/internal/catalog/postgres"
	"github.com/teampulse/teampulse/internal/core/events"
	"github.com/teampulse/teampulse/internal/project"
	projectPostgres "github.com/teampulse/teampulse/internal/project/postgres"
	"github.com/teampulse/teampulse/internal/role"
	rolePostgres "github.com/teampulse/teampulse/internal/role/postgres"
	"github.com/teampulse/teampulse/internal/transport/rest"
	"github.com/teampulse/teampulse/internal/transport/swagger"
	"github.com/teampulse/teampulse/internal/user"
	userPostgres "github.com/teampulse/teampulse/internal/user/postgres"
	"github.com/teampulse/teampulse/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}

	// Fail fast on a broken API document instead of serving it blind.
	if err := swagger.ValidateDocument(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	bus := events.NewEventBus(lg)
	subscribeAuditLog(bus, lg)

	catalogService := catalog.NewService(catalogPostgres.NewCatalogRepository(gormDB), lg)
	roleService := role.NewService(rolePostgres.NewRoleRepository(gormDB), bus, lg)
	projectService := project.NewService(projectPostgres.NewProjectRepository(gormDB), bus, lg)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), bus, config.Security.BCryptCost, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), userService, tokenGen)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		db.DB,
		auth.NewHandler(authService),
		user.NewHandler(userService),
		catalog.NewHandler(catalogService),
		role.NewHandler(roleService),
		project.NewHandler(projectService),
		lg,
	)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
	}, nil
}

// subscribeAuditLog writes every replace-style mutation to the structured
// log. The events carry the superseded write's replacement payload, which is
// otherwise lost under last-write-wins.
func subscribeAuditLog(bus *events.EventBus, lg *slog.Logger) {
	log := func(ctx context.Context, event events.Event) error {
		lg.Info("audit",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	}
	bus.Subscribe(events.EventRolePermissionsReplaced, log)
	bus.Subscribe(events.EventUserAssignmentsReplaced, log)
	bus.Subscribe(events.EventProjectMembersReplaced, log)
	bus.Subscribe(events.EventTeamMembersReplaced, log)
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
