package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/middleware"
	"github.com/planboard/planboard/internal/services"
	"github.com/planboard/planboard/pkg/response"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB, engine *authz.Engine) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db, engine),
	}
}

// Stats returns aggregate counts scoped to the caller's visibility
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
