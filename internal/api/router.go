package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wildpitch/spot-booking-backend/internal/auth"
	"github.com/wildpitch/spot-booking-backend/internal/notification"
	notificationHttp "github.com/wildpitch/spot-booking-backend/internal/notification/http"
	"github.com/wildpitch/spot-booking-backend/internal/pkg/metrics"
	"github.com/wildpitch/spot-booking-backend/internal/reservation"
	reservationHttp "github.com/wildpitch/spot-booking-backend/internal/reservation/http"
	"github.com/wildpitch/spot-booking-backend/internal/review"
	reviewHttp "github.com/wildpitch/spot-booking-backend/internal/review/http"
	"github.com/wildpitch/spot-booking-backend/internal/spot"
	spotHttp "github.com/wildpitch/spot-booking-backend/internal/spot/http"
	"github.com/wildpitch/spot-booking-backend/internal/spotimage"
	spotimageHttp "github.com/wildpitch/spot-booking-backend/internal/spotimage/http"
	"github.com/wildpitch/spot-booking-backend/internal/user"
	userHttp "github.com/wildpitch/spot-booking-backend/internal/user/http"
)

// Config carries everything the router needs to assemble middleware and
// register each module's routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	SpotService         spot.Service
	SpotImageService    spotimage.Service
	ReservationService  reservation.Service
	ReviewService       review.Service
	NotificationService notification.Service

	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
}

// NewRouter assembles middleware (CORS, logging, metrics, auth) and registers
// routes for every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
			"http://localhost:3000", // local frontend
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin()

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	spotHandler := spotHttp.NewHandler(cfg.SpotService)
	spotImageHandler := spotimageHttp.NewHandler(cfg.SpotImageService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	notificationHandler := notificationHttp.NewHandler(cfg.NotificationService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		spotHttp.RegisterRoutes(v1, spotHandler, authMiddleware)
		spotimageHttp.RegisterRoutes(v1, spotImageHandler, authMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware, adminMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
		notificationHttp.RegisterRoutes(v1, notificationHandler, authMiddleware)
	}

	return r
}
