package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/vigia-app/vigia-backend/internal/alert"
	"github.com/vigia-app/vigia-backend/internal/config"
	v1 "github.com/vigia-app/vigia-backend/internal/handler/http/v1"
	"github.com/vigia-app/vigia-backend/internal/repository"
	"github.com/vigia-app/vigia-backend/internal/service"
	"github.com/vigia-app/vigia-backend/internal/sos"
	"github.com/vigia-app/vigia-backend/pkg/logger"
	"github.com/vigia-app/vigia-backend/pkg/postgres"
	redisclient "github.com/vigia-app/vigia-backend/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/vigia-app/vigia-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Vigia Community Safety API
// @version 1.0
// @description Community crime reporting, proximity-gated verification and SOS beacon backend.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// SOS alert delivery: publisher enqueues, worker drains the queue.
	alertPublisher := alert.NewRedisPublisher(redisClient)
	alertWorker := alert.NewWorker(redisClient, log, cfg)
	alertWorker.Start(ctx)

	reportRepo := repository.NewReportRepository(dbpool)
	neighborhoodRepo := repository.NewNeighborhoodRepository(dbpool, redisClient, cfg.LeaderboardCacheTTL)
	profileRepo := repository.NewProfileRepository(dbpool)
	sosRepo := repository.NewSOSRepository(dbpool)

	reportService := service.NewReportService(reportRepo, neighborhoodRepo, profileRepo, log)
	verificationService := service.NewVerificationService(reportRepo, neighborhoodRepo, profileRepo, log, cfg)
	leaderboardService := service.NewLeaderboardService(neighborhoodRepo, log)
	services := service.NewService(reportService, verificationService, leaderboardService)

	beacons := sos.NewManager(profileRepo, sosRepo, sosRepo, alertPublisher, log, cfg)

	handler := v1.NewHandler(services, beacons, sosRepo, profileRepo, log)

	router := gin.Default()
	api := router.Group("/api/v1")
	api.Use(v1.APIKeyAuthMiddleware(cfg, log))
	handler.RegisterRoutes(api)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// Disarm every active beacon before the server stops accepting requests
	// so no emission races the pool teardown.
	beacons.StopAll()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
