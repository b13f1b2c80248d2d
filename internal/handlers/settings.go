package handlers

import (
	"log"
	"net/http"

	"safinaland-api/internal/database"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the site settings key-value map.
type SettingsHandler struct {
	db *database.GormDB
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(db *database.GormDB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.db.GetAllSettings()
	if err != nil {
		log.Printf("Settings: Get failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update handles PUT /api/settings (bearer) with a flat key-value map.
func (h *SettingsHandler) Update(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid settings payload"})
		return
	}

	if err := h.db.UpsertSettings(values); err != nil {
		log.Printf("Settings: Update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}
