package container

import (
	"log/slog"

	"github.com/eventsplace/server/internal/config"
	"github.com/eventsplace/server/internal/mailer"
	"github.com/eventsplace/server/internal/models"
	"github.com/eventsplace/server/internal/services"
	"github.com/plutov/paypal/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	// Database clients
	MongoDBClient  *mongo.Client
	RedisClient    *redis.Client
	BookingService *services.BookingService
	UserService    *services.UserService
	VenueService   *services.VenuesService
	PaymentService *services.PaymentService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
	paypalClient *paypal.Client,
) *Container {
	// Initialize repositories
	mongoRepo := models.MongodbNewRepo(mongoDBClient)
	otpRepo := models.RedisNewOTPRepo(redisClient)
	otpMailer := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	bookingService := services.NewBookingService(mongoRepo, mongoRepo, logger)
	userService := services.NewUserService(mongoRepo, mongoRepo, otpRepo, otpMailer, logger)
	venueService := services.NewVenuesService(mongoRepo)
	paymentService := services.NewPaymentService(mongoRepo, mongoRepo, paypalClient, cfg.ReturnURL, cfg.CancelURL, logger)

	return &Container{
		Logger:         logger,
		MongoDBClient:  mongoDBClient,
		RedisClient:    redisClient,
		BookingService: bookingService,
		UserService:    userService,
		VenueService:   venueService,
		PaymentService: paymentService,
	}
}
