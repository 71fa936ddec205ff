package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"docporter/internal/config"
	"docporter/internal/handler"
	"docporter/internal/middleware"
	"docporter/internal/repository/postgres"
	"docporter/internal/service"
	"docporter/internal/service/archive"
	"docporter/internal/service/export"
	"docporter/internal/service/task"
	"docporter/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_backend", cfg.StorageBackend,
	)

	// Apply schema migrations
	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(),
		Logger: logger,
	}
	containerRepo := postgres.NewDocumentContainerRepository(repoConfig)
	documentRepo := postgres.NewEditorDocumentRepository(repoConfig)
	listRepo := postgres.NewSnippetListRepository(repoConfig)
	snippetRepo := postgres.NewSnippetRepository(repoConfig)
	versionRepo := postgres.NewSnippetVersionRepository(repoConfig)
	taskRepo := postgres.NewTaskRepository(repoConfig)
	jobErrorRepo := postgres.NewJobErrorRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create archive storage backend
	var store storage.Storage
	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
		}, logger)
		if err != nil {
			log.Fatalf("Failed to create S3 storage: %v", err)
		}
	default:
		store, err = storage.NewLocalStorage(cfg.ShareDir, logger)
		if err != nil {
			log.Fatalf("Failed to create local storage: %v", err)
		}
	}

	// Create services
	collector := export.NewCollector(containerRepo, documentRepo, listRepo, snippetRepo, versionRepo, logger)
	codec := archive.NewCodec()
	exportService := service.NewExportService(collector, codec, fileRepo, store, logger)
	importService := service.NewImportService(codec, containerRepo, documentRepo, listRepo, snippetRepo, versionRepo, txManager, logger)

	// Unexpected errors indicate an unknown process state; record, log and
	// optionally terminate
	onUnknown := func(err error) {
		logger.Error("unexpected error during task execution", "error", err)
		if cfg.ExitOnUnknownError {
			os.Exit(1)
		}
	}
	runner := task.NewRunner(taskRepo, jobErrorRepo, onUnknown, logger)

	// Create handlers
	exportHandler := handler.NewExportHandler(exportService, runner, logger)
	importHandler := handler.NewImportHandler(importService, runner, logger)
	taskHandler := handler.NewTaskHandler(taskRepo, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns). Everything except the
	// health check sits behind the group check.
	api := http.NewServeMux()
	api.HandleFunc("POST /export", exportHandler.Export)
	api.HandleFunc("POST /import", importHandler.Import)
	api.HandleFunc("GET /tasks/{id}", taskHandler.GetTask)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", taskHandler.HealthCheck)
	mux.Handle("/", middleware.RequireGroup(cfg.AllowedGroups)(api))

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Groups → Routes
	var httpHandler http.Handler = mux
	httpHandler = middleware.Recovery(logger)(httpHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "mu-auth-allowed-groups"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Drain in-flight tasks before exiting
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	runner.Wait()

	logger.Info("shutdown complete")
}
