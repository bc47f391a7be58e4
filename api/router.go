package api

import (
	_ "embed"
	"net/http"

	"github.com/Domenick1991/pawcare/internal/middleware"
	"github.com/Domenick1991/pawcare/internal/service/booking"
	"github.com/Domenick1991/pawcare/internal/service/providers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

//go:embed docs/openapi.json
var openAPIDoc []byte

type RouterConfig struct {
	AllowedOrigins []string
	JWTSecret      string
}

func NewRouter(cfg RouterConfig, bookings booking.BookingUseCase, catalogue providers.ProviderUseCase, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	r.GET("/docs/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", openAPIDoc)
	})
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json"))))

	apiGroup := r.Group("/api", middleware.Identity(cfg.JWTSecret, logger))
	NewBookingHandler(bookings).Register(apiGroup.Group("/bookings"))
	NewProviderHandler(catalogue).Register(apiGroup.Group("/providers"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
