package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepoPkg "medibook/database/repository/appointment"
	doctorRepoPkg "medibook/database/repository/doctor"
	faqRepoPkg "medibook/database/repository/faq"
	patientRepoPkg "medibook/database/repository/patient"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/account"
	"medibook/services/admin"
	"medibook/services/availability"
	"medibook/services/booking"
	"medibook/services/notification"
	"medibook/services/session"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	faqRepo := faqRepoPkg.NewMongoFAQRepo()

	// services.
	accountService := &account.DefaultAccountService{
		Patients: patientRepo,
		Doctors:  doctorRepo,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Repo:  doctorRepo,
		Cache: utils.GetCacheClient(),
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	bookingService := &booking.DefaultBookingService{
		DoctorRepo:      doctorRepo,
		PatientRepo:     patientRepo,
		AppointmentRepo: appointmentRepo,
		Payments:        booking.NewStripePaymentProcessor(logger),
		Reminders:       tasks.NewAsynqReminderScheduler(asynqClient),
	}

	adminService := &admin.DefaultAdminService{
		Doctors:  doctorRepo,
		Patients: patientRepo,
	}

	sessionStore := session.NewRedisStore(utils.GetAuthCacheClient())

	handlers.Init(handlers.Deps{
		Accounts:     accountService,
		Bookings:     bookingService,
		Availability: availabilityService,
		Admin:        adminService,
		Sessions:     sessionStore,
		Patients:     patientRepo,
		Doctors:      doctorRepo,
		FAQs:         faqRepo,
	})

	// Register routes.
	routes.RegisterRoutes(router, patientRepo, doctorRepo)

	// Background reminder worker.
	notificationService, err := notification.NewDefaultNotificationService(patientRepo, doctorRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	cron.InitReminderWorker(notificationService)

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetOTPCacheClient(),
	}, database.MongoClient)

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
			logger.Sugar().Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Sugar().Info("Server exited")
}
