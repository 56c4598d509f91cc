package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foodplaces/pkg/logger"
	"foodplaces/pkg/metrics"
)

const serviceName = "places-service"

// Handlers - набор обработчиков для SetupRoutes
type Handlers struct {
	City   *CityHandler
	Place  *PlaceHandler
	Review *ReviewHandler
	Auth   *AuthHandler
	Health *HealthCheckHandler
}

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(h Handlers, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowWildcard:    true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Access-Token", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", h.Health.HealthCheck)
	router.GET("/health/liveness", h.Health.Liveness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticated := authMiddleware.Authenticate()
	adminOnly := authMiddleware.RequireAdmin()

	api := router.Group("/api")
	{
		api.POST("/register", h.Auth.Register)
		api.GET("/login", h.Auth.Login)
		api.POST("/login", h.Auth.Login)
		api.GET("/logout", authenticated, h.Auth.Logout)
	}

	cities := api.Group("/cities")
	{
		cities.GET("", h.City.ListCities)
		cities.POST("", authenticated, h.City.CreateCity)
		cities.GET("/:city_id", h.City.GetCity)
		cities.PUT("/:city_id", authenticated, h.City.UpdateCity)
		cities.DELETE("/:city_id", authenticated, adminOnly, h.City.DeleteCity)
	}

	places := cities.Group("/:city_id/places")
	{
		places.GET("", h.Place.ListPlaces)
		places.POST("", authenticated, h.Place.CreatePlace)
		places.GET("/:place_id", h.Place.GetPlace)
		places.PUT("/:place_id", authenticated, h.Place.UpdatePlace)
		places.DELETE("/:place_id", authenticated, adminOnly, h.Place.DeletePlace)
		places.PATCH("/:place_id/status", authenticated, adminOnly, h.Place.UpdatePlaceStatus)
		places.POST("/:place_id/update-rating", authenticated, h.Review.RecomputeRating)
	}

	reviews := places.Group("/:place_id/reviews")
	{
		reviews.GET("", h.Review.ListReviews)
		reviews.POST("", authenticated, h.Review.CreateReview)
		reviews.GET("/:review_id", h.Review.GetReview)
		reviews.PUT("/:review_id", authenticated, h.Review.UpdateReview)
		reviews.DELETE("/:review_id", authenticated, adminOnly, h.Review.DeleteReview)
	}

	return router
}
