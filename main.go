// File: panelwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"panelwise/config"
	"panelwise/database"
	participantRepo "panelwise/database/repository/participant"
	"panelwise/handlers"
	"panelwise/middleware"
	"panelwise/routes"
	"panelwise/services/calendar"
	"panelwise/services/scheduling"
	"panelwise/services/timezone"
	"panelwise/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	directory := participantRepo.NewMongoParticipantRepo()

	// Providers.
	zones := timezone.NewResolver()
	hoursProvider := &calendar.ProfileHoursProvider{Zones: zones}

	if config.AppConfig.GoogleCredentialsFile == "" {
		logger.Sugar().Fatal("main: GOOGLE_CREDENTIALS_FILE is required to reach the calendar backend")
	}
	googleBusy, err := calendar.NewGoogleBusyProvider(context.Background(), config.AppConfig.GoogleCredentialsFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar backend: %v", err)
	}
	busyProvider := &calendar.CachedBusyProvider{
		Inner: googleBusy,
		Cache: utils.GetCacheClient(),
		TTL:   time.Duration(config.AppConfig.CalendarCacheTTLSecs) * time.Second,
	}

	// Services.
	schedulingService := &scheduling.DefaultSchedulingService{
		Directory:    directory,
		Hours:        hoursProvider,
		Busy:         busyProvider,
		Zones:        zones,
		FetchWorkers: config.AppConfig.FetchWorkers,
		FetchTimeout: time.Duration(config.AppConfig.FetchTimeoutSecs) * time.Second,
	}
	scheduleHandler := handlers.NewScheduleHandler(schedulingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ComputeSlotsHandler:    scheduleHandler.ComputeSlotsHandler,
		ComputeAllSlotsHandler: scheduleHandler.ComputeAllSlotsHandler,
		CheckSlotHandler:       scheduleHandler.CheckSlotHandler,
		PanelEventsHandler:     scheduleHandler.PanelEventsHandler,
		HealthHandler:          handlers.HealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
