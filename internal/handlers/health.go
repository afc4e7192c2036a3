package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// CheckHealth returns the health status of all subsystems.
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "planboard",
		"components": gin.H{
			"database": dbStatus,
		},
	})
}
