package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arsh246/weather-app/internal/auth"
	"github.com/arsh246/weather-app/internal/middleware"
)

// NewRouter assembles the full HTTP surface. Signup and login are the only
// routes outside the auth gate; everything under the protected group passes
// the verifier first.
func NewRouter(weather *WeatherHandler, history *HistoryHandler, accounts *AuthHandler,
	verifier auth.Verifier, origins []string, log *zap.Logger) *gin.Engine {

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	router.GET("/health", HealthCheck)

	api := router.Group("/api/v1")
	{
		api.POST("/signup", accounts.Signup)
		api.POST("/login", accounts.Login)

		protected := api.Group("/").Use(middleware.AuthRequired(verifier))
		{
			protected.GET("/weather/current", weather.GetWeatherByLocation)
			protected.GET("/weather/:city", weather.GetWeather)

			protected.GET("/history", history.List)
			protected.PUT("/history/:id", history.Update)
			protected.DELETE("/history/:id", history.Delete)
			protected.GET("/history/export", history.Export)
		}
	}

	return router
}
