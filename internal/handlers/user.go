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

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(db *gorm.DB, engine *authz.Engine) *UserHandler {
	return &UserHandler{
		userService: services.NewUserService(db, engine),
	}
}

// List returns all users
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// GetByID returns a user by ID
// GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.userService.GetByID(middleware.Actor(c), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// Delete removes a user and unassigns their tasks
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.userService.Delete(middleware.Actor(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "user deleted successfully"})
}
