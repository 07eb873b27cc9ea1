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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/company-portal/internal"
	"github.com/frahmantamala/company-portal/internal/auth"
	authPostgres "github.com/frahmantamala/company-portal/internal/auth/postgres"
	"github.com/frahmantamala/company-portal/internal/department"
	departmentPostgres "github.com/frahmantamala/company-portal/internal/department/postgres"
	"github.com/frahmantamala/company-portal/internal/employee"
	employeePostgres "github.com/frahmantamala/company-portal/internal/employee/postgres"
	"github.com/frahmantamala/company-portal/internal/importer"
	importerPostgres "github.com/frahmantamala/company-portal/internal/importer/postgres"
	"github.com/frahmantamala/company-portal/internal/project"
	projectPostgres "github.com/frahmantamala/company-portal/internal/project/postgres"
	"github.com/frahmantamala/company-portal/internal/transport/rest"
	"github.com/frahmantamala/company-portal/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle portal requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger

	sessionTokens := auth.NewJWTSessionTokens(
		deps.Config.Security.SessionSecret,
		deps.Config.Security.SessionTTL,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.GormDB), sessionTokens)
	authHandler := auth.NewHandler(authService)

	departmentService := department.NewService(departmentPostgres.NewDepartmentRepository(deps.GormDB), lg)
	departmentHandler := department.NewHandler(departmentService)

	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(deps.GormDB), lg)
	employeeHandler := employee.NewHandler(employeeService, departmentService)

	projectService := project.NewService(projectPostgres.NewProjectRepository(deps.GormDB), lg)
	projectHandler := project.NewHandler(projectService)

	importService := importer.NewService(importerPostgres.NewImportRepository(deps.GormDB), lg)
	importHandler := importer.NewHandler(importService)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		authHandler,
		employeeHandler,
		projectHandler,
		departmentHandler,
		importHandler,
		lg,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Format, config.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
