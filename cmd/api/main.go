package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/Dan9191/gallery-service/internal/auth"
	"github.com/Dan9191/gallery-service/internal/config"
	"github.com/Dan9191/gallery-service/internal/handler"
	"github.com/Dan9191/gallery-service/internal/jobs"
	"github.com/Dan9191/gallery-service/internal/middleware"
	"github.com/Dan9191/gallery-service/internal/repository"
	"github.com/Dan9191/gallery-service/internal/service"
	"github.com/Dan9191/gallery-service/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize store
	var store service.Store
	switch cfg.Storage {
	case "memory":
		logger.Warn("Using in-memory store, data will not survive a restart")
		store = repository.NewMemory()
	default:
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		store = repository.NewRepository(db)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatalf("Failed to create upload dir: %v", err)
	}

	// Initialize layers
	tokens := auth.NewTokenService(cfg.JWTSecret)
	var mailer service.Mailer
	if cfg.SMTPEnabled() {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(store, tokens, mailer, logger, cfg)
	h := handler.NewHandler(svc, cfg.PublicURL, logger)

	// Setup router
	r := handler.NewRouter(h, middleware.AuthMiddleware(tokens), cfg.UploadDir)

	// Schedule the orphan upload sweep
	runner := cron.New()
	cleaner := jobs.NewCleaner(store, cfg.UploadDir, logger)
	if err := cleaner.Schedule(runner); err != nil {
		logger.Fatalf("Failed to schedule upload sweep: %v", err)
	}
	runner.Start()
	defer runner.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
