package cmd

import (
	"context"
	"database/sql"
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
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cashbox/internal"
	"cashbox/internal/analysis"
	"cashbox/internal/auth"
	"cashbox/internal/category"
	"cashbox/internal/ledger"
	"cashbox/internal/storage"
	"cashbox/internal/storage/local"
	"cashbox/internal/storage/postgres"
	"cashbox/internal/transport"
	"cashbox/internal/transport/rest"
	"cashbox/internal/user"
	"cashbox/pkg/logger"
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
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr, "remote", deps.Config.RemoteEnabled())

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
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if deps.DB != nil {
			if err := deps.DB.Close(); err != nil {
				deps.Logger.Error("database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.LoggerWrapper()

	store, err := local.Open(config.Storage.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	localUsers := local.NewUserRepository(store, storage.SeedUsers())
	localTxs := local.NewTransactionRepository(store, storage.SeedTransactions())

	// A missing or unreachable remote backend is not fatal; the local
	// snapshot store carries the service alone.
	var db *sqlx.DB
	var remoteUsers user.Repository
	var remoteTxs ledger.Repository
	if config.RemoteEnabled() {
		db, err = initDB(config.Database)
		if err != nil {
			log.Warn("remote backend unreachable, continuing local-only", "error", err)
			db = nil
		} else {
			gormDB, gerr := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
				Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
				TranslateError: true,
			})
			if gerr != nil {
				log.Warn("remote backend unusable, continuing local-only", "error", gerr)
				_ = db.Close()
				db = nil
			} else {
				remoteUsers = postgres.NewUserRepository(gormDB)
				remoteTxs = postgres.NewTransactionRepository(gormDB)
			}
		}
	}

	userRepo := storage.NewMirroredUserRepository(remoteUsers, localUsers, log)
	txRepo := storage.NewMirroredTransactionRepository(remoteTxs, localTxs, log)

	userService := user.NewService(userRepo, log)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenTTL,
		config.Security.RefreshTokenTTL,
	)
	authService := auth.NewService(userService, tokenGen, log)
	ledgerService := ledger.NewService(txRepo, log)

	var aiClient analysis.Client
	if config.AIEnabled() {
		aiClient, err = analysis.NewGeminiClient(config.AI)
		if err != nil {
			log.Warn("analysis client unavailable", "error", err)
			aiClient = nil
		}
	}
	analysisService := analysis.NewService(aiClient, log)

	handlers := rest.Handlers{
		Auth:     auth.NewHandler(authService),
		User:     user.NewHandler(userService),
		Ledger:   ledger.NewHandler(ledgerService),
		Category: category.NewHandler(transport.NewBaseHandler(log)),
		Analysis: analysis.NewHandler(analysisService, ledgerService),
	}

	router := chi.NewRouter()
	var sqlDB *sql.DB
	if db != nil {
		sqlDB = db.DB
	}
	rest.RegisterAllRoutes(router, sqlDB, handlers, config.Server.AllowedOrigins)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   router,
		Handlers: handlers,
		Logger:   log,
	}, nil
}

// initDB opens and verifies the remote database connection.
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
