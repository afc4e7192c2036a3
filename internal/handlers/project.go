package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/middleware"
	"github.com/planboard/planboard/internal/services"
	"github.com/planboard/planboard/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB, engine *authz.Engine) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db, engine),
	}
}

// List returns the projects visible to the caller
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

// GetByID returns a project by ID
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projectService.GetByID(middleware.Actor(c), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// Create creates a new project
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(middleware.Actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// Update updates a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(middleware.Actor(c), uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// UpdateStatus changes only a project's status
// PATCH /api/projects/:id/status
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.UpdateStatus(middleware.Actor(c), uint(id), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// Delete deletes a project and everything under it
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	if err := h.projectService.Delete(middleware.Actor(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "project deleted successfully"})
}
