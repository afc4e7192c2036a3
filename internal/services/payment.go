package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
	"github.com/planboard/planboard/pkg/response"
)

type PaymentService struct {
	db     *gorm.DB
	engine *authz.Engine
}

func NewPaymentService(db *gorm.DB, engine *authz.Engine) *PaymentService {
	return &PaymentService{db: db, engine: engine}
}

type CreatePaymentRequest struct {
	ProjectID uint       `json:"project_id" binding:"required"`
	Amount    int64      `json:"amount" binding:"required,gt=0"`
	Date      *time.Time `json:"date"`
}

// Create records a payment against an existing project.
func (s *PaymentService) Create(actor authz.Actor, req *CreatePaymentRequest) (*models.Payment, error) {
	if _, err := authorize(s.engine, actor, authz.OpPaymentCreate, authz.Resource{ProjectID: req.ProjectID}); err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	payment := models.Payment{
		ProjectID: req.ProjectID,
		Amount:    req.Amount,
		Date:      date,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByProject returns the payments of one project. Non-admins must be
// assigned to the project.
func (s *PaymentService) ListByProject(actor authz.Actor, projectID uint) ([]models.Payment, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if _, err := authorize(s.engine, actor, authz.OpPaymentListByProject, authz.Resource{ProjectID: projectID}); err != nil {
		return nil, err
	}

	var payments []models.Payment
	if err := s.db.Where("project_id = ?", projectID).
		Order("date DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
