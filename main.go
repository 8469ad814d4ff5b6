// File: tutorly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorly/config"
	"tutorly/cron"
	"tutorly/database"
	"tutorly/database/repository"
	"tutorly/handlers"
	"tutorly/middleware"
	"tutorly/routes"
	"tutorly/services/booking"
	"tutorly/services/reservation"
	"tutorly/services/tasks"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := repository.NewMongoBookingRepo()

	// background queue client for hold-expiry tasks.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	workflow := &booking.DefaultWorkflowService{
		Sessions:     booking.NewRedisSessionStore(utils.GetSessionCacheClient()),
		Reservations: reservation.NewHTTPClient(config.AppConfig.ReservationAPIURL, config.AppConfig.ReservationAPIKey),
		Payments:     booking.NewPaymentHandler(logger),
		Repo:         bookingRepo,
		Notifier:     &booking.LogNotifier{Logger: logger},
		Holds:        tasks.NewAsynqHoldScheduler(queueClient),
		UnitPrice:    config.AppConfig.UnitPrice,
		Currency:     config.AppConfig.Currency,
		HoldTTL:      time.Duration(config.AppConfig.SubmissionHoldMinutes) * time.Minute,
	}

	holdWorker := cron.InitHoldExpiryWorker(workflow)
	defer holdWorker.Shutdown()

	bookingHandler := handlers.NewBookingHandler(workflow, bookingRepo, logger)
	routes.RegisterRoutes(router, bookingHandler)

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
