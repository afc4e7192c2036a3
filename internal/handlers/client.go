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

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(db *gorm.DB, engine *authz.Engine) *ClientHandler {
	return &ClientHandler{
		clientService: services.NewClientService(db, engine),
	}
}

// List returns all clients
// GET /api/clients
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, clients)
}

// GetByID returns a client by ID
// GET /api/clients/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	client, err := h.clientService.GetByID(middleware.Actor(c), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, client)
}

// Create creates a new client
// POST /api/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Create(middleware.Actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, client)
}

// Update updates a client
// PUT /api/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Update(middleware.Actor(c), uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, client)
}

// Delete deletes a client without projects
// DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	if err := h.clientService.Delete(middleware.Actor(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "client deleted successfully"})
}
