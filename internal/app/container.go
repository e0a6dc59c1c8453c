package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/wildpitch/spot-booking-backend/internal/api"
	"github.com/wildpitch/spot-booking-backend/internal/auth"
	"github.com/wildpitch/spot-booking-backend/internal/notification"
	"github.com/wildpitch/spot-booking-backend/internal/pkg/metrics"
	"github.com/wildpitch/spot-booking-backend/internal/pkg/storage"
	"github.com/wildpitch/spot-booking-backend/internal/reservation"
	"github.com/wildpitch/spot-booking-backend/internal/review"
	"github.com/wildpitch/spot-booking-backend/internal/spot"
	"github.com/wildpitch/spot-booking-backend/internal/spotimage"
	"github.com/wildpitch/spot-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	DBPool         *pgxpool.Pool
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	UploadDir      string
	MaxUploadBytes int64
	Logger         *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager

	dispatcher *notification.Dispatcher
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	log := cfg.Logger

	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool, log)
	userService := user.NewService(userRepo, passwordHasher, log)

	// Spot module
	spotRepo := spot.NewPgxRepository(cfg.DBPool, log)
	spotService := spot.NewService(spotRepo)

	// Spot image module
	imageRepo := spotimage.NewPgxRepository(cfg.DBPool, log)
	imageService := spotimage.NewService(imageRepo, spotService, store, cfg.MaxUploadBytes, log)

	// Notification module
	notificationRepo := notification.NewPgxRepository(cfg.DBPool, log)
	notificationService := notification.NewService(notificationRepo)
	dispatcher := notification.NewDispatcher(notificationRepo, log)

	// Reservation module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool, log)
	reservationService := reservation.NewService(reservationRepo, spotService, dispatcher, log)

	// Review module
	reviewRepo := review.NewPgxRepository(cfg.DBPool, log)
	reviewService := review.NewService(reviewRepo, reservationService, log)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		SpotService:         spotService,
		SpotImageService:    imageService,
		ReservationService:  reservationService,
		ReviewService:       reviewService,
		NotificationService: notificationService,
		JWTManager:          jwtManager,
		Metrics:             metrics.New("spot_booking"),
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		dispatcher: dispatcher,
	}, nil
}

// Close stops background workers, draining buffered notifications first.
func (c *Container) Close() {
	c.dispatcher.Close()
}
