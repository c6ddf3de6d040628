package routes

import (
	"github.com/eventsplace/server/internal/container"
	"github.com/eventsplace/server/internal/handlers"
	"github.com/eventsplace/server/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "eventsplace-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.CreateUser(container.UserService))
		v1.POST("/login", handlers.AuthenticateUser(container.UserService))
		v1.POST("/forgot-password", handlers.ForgotPassword(container.UserService))
		v1.POST("/verify-otp", handlers.VerifyOTP(container.UserService))
		v1.POST("/reset-password", handlers.ResetPassword(container.UserService))

		// gateway redirect landing pages
		v1.GET("/payments/success", handlers.PaymentSuccess())
		v1.GET("/payments/cancel", handlers.PaymentCancelled())
	}

	venueRoutes := v1.Group("/venues")
	{
		venueRoutes.GET("/", handlers.ListVenues(container.VenueService))
		venueRoutes.GET("/:id", handlers.GetVenueByID(container.VenueService))
		venueRoutes.GET("/type/:eventType", handlers.ListVenuesByEventType(container.VenueService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Logger))

	protected.GET("/profile", handlers.GetProfile(container.UserService))
	protected.PUT("/profile", handlers.UpdateProfile(container.UserService))

	protected.POST("/venues", handlers.CreateVenue(container.VenueService))

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("/", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/user", handlers.GetUserBookings(container.BookingService))
		bookingRoutes.DELETE("/:bookingID", handlers.CancelBooking(container.BookingService))
	}
	protected.DELETE("/cancel-booking", handlers.CancelBookingWithPayment(container.BookingService))

	paymentRoutes := protected.Group("/payments")
	{
		paymentRoutes.POST("/orders", handlers.CreateOrder(container.PaymentService))
		paymentRoutes.POST("/capture", handlers.ExecutePayment(container.PaymentService))
		paymentRoutes.POST("/", handlers.RecordPayment(container.PaymentService))
		paymentRoutes.GET("/user", handlers.GetUserPayments(container.PaymentService))
	}

	return r
}
