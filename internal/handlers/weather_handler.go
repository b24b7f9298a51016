package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arsh246/weather-app/internal/enrich"
	"github.com/arsh246/weather-app/internal/middleware"
)

// WeatherHandler serves the enrichment endpoints.
type WeatherHandler struct {
	pipeline *enrich.Pipeline
	log      *zap.Logger
}

func NewWeatherHandler(pipeline *enrich.Pipeline, log *zap.Logger) *WeatherHandler {
	return &WeatherHandler{pipeline: pipeline, log: log}
}

// GetWeather answers GET /weather/:city.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	uid := middleware.UserID(c.Request.Context())
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rec, err := h.pipeline.Handle(c.Request.Context(), c.Param("city"), uid)
	if err != nil {
		h.log.Warn("weather lookup failed", zap.String("city", c.Param("city")), zap.Error(err))
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetWeatherByLocation answers GET /weather/current?lat=..&lon=..
func (h *WeatherHandler) GetWeatherByLocation(c *gin.Context) {
	uid := middleware.UserID(c.Request.Context())
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})
		return
	}

	rec, err := h.pipeline.HandleCoords(c.Request.Context(), lat, lon, uid)
	if err != nil {
		h.log.Warn("location weather lookup failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
