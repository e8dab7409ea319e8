package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/kos-service/internal/config"
	"github.com/Dan9191/kos-service/internal/handler"
	"github.com/Dan9191/kos-service/internal/middleware"
	"github.com/Dan9191/kos-service/internal/repository"
	"github.com/Dan9191/kos-service/internal/service"
	"github.com/Dan9191/kos-service/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	svc := service.NewService(service.Repositories{
		Users:      repo,
		Payments:   repo,
		Rooms:      repo,
		Tenants:    repo,
		Complaints: repo,
	}, logger, cfg)
	reports := service.NewReportEngine(repo, logger, cfg.Location)
	h := handler.NewHandler(handler.Services{
		Reports:    reports,
		Auth:       svc,
		Payments:   svc,
		Rooms:      svc,
		Tenants:    svc,
		Complaints: svc,
	}, logger, cfg.Location, cfg.SessionTTL)

	// Overdue payment reminders
	if cfg.ReminderEnabled {
		var mailer service.Mailer
		if cfg.SMTPConfigured() {
			mailer = email.NewSender(cfg, logger)
		} else {
			logger.Warn("SMTP is not configured, reminders will only mark payments late")
		}
		scheduler, err := service.NewReminderJob(repo, mailer, logger).Schedule(cfg.ReminderSchedule, cfg.Location)
		if err != nil {
			logger.Fatalf("Failed to schedule reminders: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		logger.Infof("Reminder job scheduled: %s", cfg.ReminderSchedule)
	}

	// Setup router
	r := handler.NewRouter(h,
		middleware.AuthMiddleware([]byte(cfg.JWTSecret), logger),
		middleware.Recovery(logger),
		middleware.Logging(logger),
	)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}
