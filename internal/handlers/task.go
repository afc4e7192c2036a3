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

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(db *gorm.DB, engine *authz.Engine) *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(db, engine),
	}
}

// List returns the tasks visible to the caller
// GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.List(middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tasks)
}

// ListByProject returns all tasks of one project
// GET /api/projects/:id/tasks
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	tasks, err := h.taskService.ListByProject(middleware.Actor(c), uint(projectID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tasks)
}

// ListByUser returns the tasks assigned to one user
// GET /api/users/:id/tasks
func (h *TaskHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	tasks, err := h.taskService.ListByUser(middleware.Actor(c), uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tasks)
}

// GetByID returns a task by ID
// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	task, err := h.taskService.GetByID(middleware.Actor(c), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// Create creates a new task
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(middleware.Actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// Update updates a task
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(middleware.Actor(c), uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// UpdateStatus changes only a task's status
// PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateStatus(middleware.Actor(c), uint(id), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// Delete deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	if err := h.taskService.Delete(middleware.Actor(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "task deleted successfully"})
}
