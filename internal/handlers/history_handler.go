package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arsh246/weather-app/internal/middleware"
	"github.com/arsh246/weather-app/internal/store"
)

// HistoryHandler is the CRUD surface over a user's stored searches.
type HistoryHandler struct {
	history store.HistoryStore
	log     *zap.Logger
}

func NewHistoryHandler(history store.HistoryStore, log *zap.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, log: log}
}

// List answers GET /history.
func (h *HistoryHandler) List(c *gin.Context) {
	uid := middleware.UserID(c.Request.Context())
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.history.List(c.Request.Context(), uid)
	if err != nil {
		h.log.Error("list history failed", zap.Error(err))
		c.JSON(httpStatus(err), gin.H{"error": "Failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// Update answers PUT /history/:id. Only temperature and weather may change.
func (h *HistoryHandler) Update(c *gin.Context) {
	uid := middleware.UserID(c.Request.Context())
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payload store.SearchUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := h.history.Update(c.Request.Context(), uid, c.Param("id"), payload); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Search updated successfully"})
}

// Delete answers DELETE /history/:id.
func (h *HistoryHandler) Delete(c *gin.Context) {
	uid := middleware.UserID(c.Request.Context())
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.history.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Search deleted successfully"})
}

// Export answers GET /history/export with the user's records, without ids,
// as a downloadable JSON document.
func (h *HistoryHandler) Export(c *gin.Context) {
	uid := middleware.UserID(c.Request.Context())
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.history.ExportAll(c.Request.Context(), uid)
	if err != nil {
		h.log.Error("export history failed", zap.Error(err))
		c.JSON(httpStatus(err), gin.H{"error": "Failed to export history"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="search-history.json"`)
	c.JSON(http.StatusOK, records)
}
