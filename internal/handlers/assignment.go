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

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(db *gorm.DB, engine *authz.Engine) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: services.NewAssignmentService(db, engine),
	}
}

// Create assigns a user to a project
// POST /api/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	assignment, err := h.assignmentService.Create(middleware.Actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Remove deletes an assignment
// DELETE /api/assignments/:id
func (h *AssignmentHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid assignment id")
		return
	}

	if err := h.assignmentService.Remove(middleware.Actor(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "assignment removed successfully"})
}

// ListByProject returns the users assigned to a project
// GET /api/projects/:id/assignments
func (h *AssignmentHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	assignments, err := h.assignmentService.ListByProject(middleware.Actor(c), uint(projectID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, assignments)
}

// ListByUser returns the projects a user is assigned to
// GET /api/users/:id/assignments
func (h *AssignmentHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	assignments, err := h.assignmentService.ListByUser(middleware.Actor(c), uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, assignments)
}
