package routes

import (
	"net/http"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login, and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, patients patientRepo.PatientRepository, doctors doctorRepo.DoctorRepository) {
	api := r.Group("/api/auth")
	{
		api.POST("/register/patient", handlers.RegisterPatientHandler)
		api.POST("/register/doctor", handlers.RegisterDoctorHandler)
		api.POST("/login", handlers.LoginHandler)
		api.POST("/verify-otp", handlers.VerifyOTPHandler)
		api.GET("/session", handlers.ResumeSessionHandler)

		protected := api.Group("")
		protected.Use(middleware.RoleBasedAuthMiddleware(patients, doctors))
		protected.DELETE("/logout", handlers.LogoutHandler)
		protected.PUT("/password", handlers.UpdatePasswordHandler)
		protected.GET("/me", handlers.GetMyProfileHandler)
	}
}

// RegisterDoctorRoutes registers the public directory plus the doctor-only
// schedule and profile management endpoints.
func RegisterDoctorRoutes(r *gin.Engine, patients patientRepo.PatientRepository, doctors doctorRepo.DoctorRepository) {
	api := r.Group("/api/doctors")
	{
		// Public directory endpoints.
		api.GET("", handlers.ListDoctorsHandler)
		api.GET("/:id", handlers.GetDoctorHandler)
		api.GET("/:id/availability", handlers.GetAvailabilityHandler)
	}

	// Doctor self-service lives under its own prefix so the directory's
	// wildcard routes stay unambiguous.
	sched := r.Group("/api/schedule")
	{
		sched.Use(middleware.JWTAuthDoctorMiddleware(doctors))
		sched.PUT("", handlers.SetAvailabilityHandler)
		sched.PATCH("/profile", handlers.UpdateDoctorProfileHandler)
		sched.GET("/appointments", handlers.ListDoctorAppointmentsHandler)
	}
}

// RegisterBookingRoutes sets up the appointment endpoints.
func RegisterBookingRoutes(r *gin.Engine, patients patientRepo.PatientRepository, doctors doctorRepo.DoctorRepository) {
	api := r.Group("/api/bookings")
	{
		patientOnly := api.Group("")
		patientOnly.Use(middleware.JWTAuthPatientMiddleware(patients))
		patientOnly.POST("", handlers.SubmitBookingHandler)
		patientOnly.GET("", handlers.ListMyAppointmentsHandler)

		participant := api.Group("")
		participant.Use(middleware.RoleBasedAuthMiddleware(patients, doctors))
		participant.GET("/:id", handlers.GetAppointmentHandler)
		participant.DELETE("/:id", handlers.CancelAppointmentHandler)
	}
}

// RegisterPatientRoutes registers patient self-service endpoints.
func RegisterPatientRoutes(r *gin.Engine, patients patientRepo.PatientRepository) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.JWTAuthPatientMiddleware(patients))
		api.PATCH("/profile", handlers.UpdatePatientProfileHandler)
		api.PUT("/health-profile", handlers.UpdateHealthProfileHandler)
	}
}

// RegisterFAQRoutes registers the public FAQ listing.
func RegisterFAQRoutes(r *gin.Engine) {
	r.GET("/api/faqs", handlers.ListFAQsHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/doctors", handlers.AdminListDoctorsHandler)
		adminGroup.PUT("/doctors/:id/status", handlers.AdminVetDoctorHandler)
		adminGroup.GET("/patients", handlers.AdminListPatientsHandler)
		adminGroup.POST("/faqs", handlers.AdminCreateFAQHandler)
		adminGroup.PUT("/faqs/:id", handlers.AdminUpdateFAQHandler)
		adminGroup.DELETE("/faqs/:id", handlers.AdminDeleteFAQHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, patients patientRepo.PatientRepository, doctors doctorRepo.DoctorRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, patients, doctors)
	RegisterDoctorRoutes(r, patients, doctors)
	RegisterBookingRoutes(r, patients, doctors)
	RegisterPatientRoutes(r, patients)
	RegisterFAQRoutes(r)
	RegisterAdminRoutes(r)
	RegisterHealthRoute(r)
}
