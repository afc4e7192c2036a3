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

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(db *gorm.DB, engine *authz.Engine) *PaymentHandler {
	return &PaymentHandler{
		paymentService: services.NewPaymentService(db, engine),
	}
}

// Create records a payment against a project
// POST /api/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.Create(middleware.Actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// ListByProject returns a project's payments
// GET /api/projects/:id/payments
func (h *PaymentHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	payments, err := h.paymentService.ListByProject(middleware.Actor(c), uint(projectID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, payments)
}
