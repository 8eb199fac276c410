package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundihub/config"
	"fundihub/cron"
	"fundihub/database"
	bookingRepoPkg "fundihub/database/repository/booking"
	jobRepoPkg "fundihub/database/repository/job"
	notificationRepoPkg "fundihub/database/repository/notification"
	paymentRepoPkg "fundihub/database/repository/payment"
	providerRepoPkg "fundihub/database/repository/provider"
	userRepoPkg "fundihub/database/repository/user"
	"fundihub/handlers"
	"fundihub/middleware"
	"fundihub/models"
	"fundihub/routes"
	"fundihub/services/admin"
	"fundihub/services/booking"
	"fundihub/services/notification"
	"fundihub/services/payment"
	"fundihub/services/provider"
	"fundihub/services/realtime"
	"fundihub/services/tasks"
	"fundihub/services/user"
	"fundihub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	jobRepo := jobRepoPkg.NewMongoJobRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	provRepo := providerRepoPkg.NewMongoProviderRepo()

	// realtime hub.
	hub := realtime.NewHub(logger)

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:       notificationRepo,
		Dispatcher: hub,
		Users:      userRepo,
		Providers:  provRepo,
		Logger:     logger,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := &tasks.Scheduler{
		Client: asynqClient,
		Logger: logger,
	}

	workflowService := &booking.DefaultWorkflowService{
		Bookings:        bookingRepo,
		Jobs:            jobRepo,
		Payments:        paymentRepo,
		NotificationSvc: notificationService,
		Dispatcher:      hub,
		Reminders:       reminderScheduler,
		Logger:          logger,
	}

	paymentService := &payment.DefaultPaymentService{
		Repo: paymentRepo,
		Gateways: map[models.PaymentMethod]payment.GatewayClient{
			models.PaymentMethodMpesa:  payment.NewMpesaClient(config.AppConfig.MpesaBaseURL, config.AppConfig.MpesaConsumerKey),
			models.PaymentMethodPaypal: payment.NewPaypalClient(config.AppConfig.PaypalBaseURL, config.AppConfig.PaypalClientID, config.AppConfig.PaymentCurrency),
			models.PaymentMethodCard:   payment.NewCardClient(config.AppConfig.PaymentCurrency),
		},
		NotificationSvc: notificationService,
		Logger:          logger,
	}

	userService := &user.DefaultUserService{Repo: userRepo}
	providerService := &provider.DefaultProviderService{Repo: provRepo}
	adminService := &admin.DefaultAdminService{
		Providers:       provRepo,
		NotificationSvc: notificationService,
		Logger:          logger,
	}

	// Background reminder worker.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:      handlers.NewBookingHandler(workflowService, logger),
		Notification: handlers.NewNotificationHandler(notificationService, logger),
		Payment:      handlers.NewPaymentHandler(paymentService, logger),
		Realtime:     handlers.NewRealtimeHandler(hub, logger),
		User:         handlers.NewUserHandler(userService, logger),
		Provider:     handlers.NewProviderHandler(providerService, logger),
		Admin:        handlers.NewAdminHandler(adminService, logger),
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
