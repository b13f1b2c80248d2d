package handlers

import (
	"log"
	"net/http"
	"time"

	"safinaland-api/internal/cleanup"

	"github.com/gin-gonic/gin"
)

// CleanupHandler triggers the orphaned-upload sweep on demand.
type CleanupHandler struct {
	service *cleanup.Service
}

// NewCleanupHandler creates a new cleanup handler
func NewCleanupHandler(service *cleanup.Service) *CleanupHandler {
	return &CleanupHandler{service: service}
}

// Run handles POST /api/cleanup/run (bearer).
func (h *CleanupHandler) Run(c *gin.Context) {
	var req struct {
		RetentionHours int  `json:"retention_hours"`
		MaxDeletions   int  `json:"max_deletions"`
		DryRun         bool `json:"dry_run"`
	}
	// Empty body runs with defaults.
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cleanup request"})
		return
	}

	config := cleanup.DefaultCleanupConfig()
	if req.RetentionHours > 0 {
		config.Retention = time.Duration(req.RetentionHours) * time.Hour
	}
	if req.MaxDeletions > 0 {
		config.MaxDeletions = req.MaxDeletions
	}
	config.DryRun = req.DryRun

	log.Printf("Cleanup: Manual run (retention: %v, max: %d, dry-run: %v)",
		config.Retention, config.MaxDeletions, config.DryRun)

	result, err := h.service.Run(config)
	if err != nil {
		log.Printf("Cleanup: Manual run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
