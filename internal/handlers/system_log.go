package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/services"
	"github.com/planboard/planboard/pkg/response"
)

type SystemLogHandler struct {
	systemLogService *services.SystemLogService
}

func NewSystemLogHandler(db *gorm.DB) *SystemLogHandler {
	return &SystemLogHandler{
		systemLogService: services.NewSystemLogService(db),
	}
}

// List returns paginated audit log entries, Admin only
// GET /api/system-logs
func (h *SystemLogHandler) List(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.systemLogService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// GetModules returns the distinct modules that have log entries
// GET /api/system-logs/modules
func (h *SystemLogHandler) GetModules(c *gin.Context) {
	modules, err := h.systemLogService.GetModules()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"modules": modules})
}
