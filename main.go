// File: studiofit/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studiofit/config"
	"studiofit/cron"
	"studiofit/database"
	memberRepo "studiofit/database/repository/member"
	sessionRepo "studiofit/database/repository/session"
	settingsRepo "studiofit/database/repository/settings"
	"studiofit/handlers"
	"studiofit/middleware"
	"studiofit/routes"
	"studiofit/services/notification"
	"studiofit/services/scheduling"
	"studiofit/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessions := sessionRepo.NewMongoSessionRepo()
	if err := sessions.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create indexes: %v", err)
	}
	members := memberRepo.NewMongoMemberRepo()
	settings := settingsRepo.NewMongoSettingsRepo()

	// services.
	notifier := notification.NewAsynqNotifier(logger)
	defer notifier.Close()

	engine := &scheduling.DefaultBookingEngine{
		Sessions:     sessions,
		Members:      members,
		Availability: &scheduling.AvailabilityChecker{Repo: sessions, Logger: logger},
		Quota:        &scheduling.QuotaChecker{Sessions: sessions, Settings: settings, Logger: logger},
		Capacity:     &scheduling.CapacityMachine{Logger: logger},
		Notifier:     notifier,
		Logger:       logger,
	}

	bookingHandler := handlers.NewBookingHandler(engine, logger)
	settingsHandler := handlers.NewSettingsHandler(settings, logger)

	routes.RegisterRoutes(router, bookingHandler, settingsHandler)

	// Background worker: notification delivery and counter reconciliation.
	cron.InitWorker(sessions)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
