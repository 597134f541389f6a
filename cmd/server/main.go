package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"organizer-service/internal/api"
	"organizer-service/internal/config"
	"organizer-service/internal/events"
	"organizer-service/internal/repository"
	"organizer-service/internal/service"
	"organizer-service/internal/tracing"
	"organizer-service/internal/upload"
	_ "organizer-service/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	api.SetupGlobalHandler(cfg.ServiceName, cfg.LogLevel)
	slog.Info("Configuration loaded", "config", cfg.String())

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg, os.Args[2:])
		return
	}

	ctx := context.Background()

	shutdownTracer, err := tracing.InitTracerProvider(ctx, cfg.ServiceName, cfg.OtelEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("Error shutting down tracer provider", "error", err)
		}
	}()

	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	slog.Info("Successfully connected to the database.")

	publisher, err := events.NewNatsPublisher(cfg.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	if np, ok := publisher.(*events.NatsPublisher); ok {
		defer np.Close()
		slog.Info("Successfully connected to NATS.")
	}

	store, uploadDir := newUploadStore(ctx, cfg)

	userRepo := repository.NewPostgresUserRepository(db)
	eventRepo := repository.NewPostgresEventRepository(db)

	userService := service.NewUserService(userRepo, publisher)
	eventService := service.NewEventService(eventRepo, publisher)

	app := api.NewApp(cfg.ServiceName)
	api.SetupRoutes(app, api.NewUserHandler(userService), api.NewEventHandler(eventService), api.RouterConfig{
		ServiceName: cfg.ServiceName,
		UploadStore: store,
		UploadDir:   uploadDir,
		PublicDir:   cfg.Upload.PublicDir,
	})

	go func() {
		slog.Info("Listening", "service", cfg.ServiceName, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}

// newUploadStore returns the configured store and, for local storage, the
// directory to serve under /uploads.
func newUploadStore(ctx context.Context, cfg *config.Config) (upload.Store, string) {
	if cfg.Upload.Backend == config.UploadBackendS3 {
		store, err := upload.NewS3Store(ctx, cfg.Upload.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 store: %v", err)
		}
		slog.Info("Storing uploads in S3", "bucket", store.BucketName)
		return store, ""
	}

	store, err := upload.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize upload dir: %v", err)
	}
	slog.Info("Storing uploads on disk", "dir", cfg.Upload.Dir)
	return store, cfg.Upload.Dir
}

func handleMigrations(cfg *config.Config, args []string) {
	slog.Info("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if len(args) > 0 && args[0] == "down" {
		if err := goose.Down(db, "migrations"); err != nil {
			log.Fatalf("goose: failed to roll back migration: %v", err)
		}
		slog.Info("Rolled back one migration.")
		return
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	slog.Info("Migrations applied successfully!")
}
