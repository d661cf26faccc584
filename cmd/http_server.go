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

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/auth"
	authPostgres "github.com/frahmantamala/document-management/internal/auth/postgres"
	"github.com/frahmantamala/document-management/internal/category"
	categoryPostgres "github.com/frahmantamala/document-management/internal/category/postgres"
	"github.com/frahmantamala/document-management/internal/document"
	documentPostgres "github.com/frahmantamala/document-management/internal/document/postgres"
	"github.com/frahmantamala/document-management/internal/permission"
	permissionPostgres "github.com/frahmantamala/document-management/internal/permission/postgres"
	"github.com/frahmantamala/document-management/internal/post"
	postPostgres "github.com/frahmantamala/document-management/internal/post/postgres"
	"github.com/frahmantamala/document-management/internal/role"
	rolePostgres "github.com/frahmantamala/document-management/internal/role/postgres"
	"github.com/frahmantamala/document-management/internal/transport"
	"github.com/frahmantamala/document-management/internal/transport/rest"
	"github.com/frahmantamala/document-management/internal/transport/swagger"
	"github.com/frahmantamala/document-management/internal/user"
	userPostgres "github.com/frahmantamala/document-management/internal/user/postgres"
	"github.com/frahmantamala/document-management/pkg/logger"

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

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

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
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	// A broken OpenAPI document should fail startup, not the Swagger UI.
	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return err
	}

	baseHandler := transport.NewBaseHandler(deps.Logger)

	tokenGen := auth.NewJWTTokenGenerator(
		deps.Config.Security.TokenSecret,
		deps.Config.Security.TokenDuration,
	)

	authRepo := authPostgres.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, deps.Logger, deps.Config.Security.BCryptCost)
	authHandler := auth.NewHandler(baseHandler, authService)
	rbac := auth.NewRBACAuthorization(deps.Logger)

	userRepo := userPostgres.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, deps.Logger, deps.Config.Security.BCryptCost)
	userHandler := user.NewHandler(baseHandler, userService)

	categoryRepo := categoryPostgres.NewCategoryRepository(deps.GormDB)
	categoryService := category.NewService(categoryRepo, deps.Logger)
	categoryHandler := category.NewHandler(baseHandler, categoryService)

	store, err := document.NewLocalStorage(deps.Config.Storage.DocumentsDir, "/storage/documents")
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}
	documentRepo := documentPostgres.NewDocumentRepository(deps.GormDB)
	documentService := document.NewService(documentRepo, categoryRepo, store, deps.Logger)
	documentHandler := document.NewHandler(baseHandler, documentService)

	postRepo := postPostgres.NewPostRepository(deps.GormDB)
	postService := post.NewService(postRepo, deps.Logger)
	postHandler := post.NewHandler(baseHandler, postService)

	roleRepo := rolePostgres.NewRoleRepository(deps.GormDB)
	roleService := role.NewService(roleRepo, deps.Logger)
	roleHandler := role.NewHandler(baseHandler, roleService)

	permissionRepo := permissionPostgres.NewPermissionRepository(deps.GormDB)
	permissionService := permission.NewService(permissionRepo, deps.Logger)
	permissionHandler := permission.NewHandler(baseHandler, permissionService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Auth:       authHandler,
		RBAC:       rbac,
		User:       userHandler,
		Category:   categoryHandler,
		Document:   documentHandler,
		Post:       postHandler,
		Role:       roleHandler,
		Permission: permissionHandler,
	}, deps.Config.Storage.DocumentsDir, deps.Logger)

	return nil
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

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
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

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM on top of the already-open pgx connection pool so
// both share one pool and one set of limits.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
