package handlers

import (
	"log"
	"net/http"

	"safinaland-api/internal/database"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the admin dashboard counters.
type DashboardHandler struct {
	db *database.GormDB
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *database.GormDB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Stats handles GET /api/dashboard/stats (bearer). Counts are computed
// fresh on every call.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.db.GetDashboardStats()
	if err != nil {
		log.Printf("Dashboard: Stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
