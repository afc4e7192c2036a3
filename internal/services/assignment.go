package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
	"github.com/planboard/planboard/pkg/response"
)

type AssignmentService struct {
	db     *gorm.DB
	engine *authz.Engine
}

func NewAssignmentService(db *gorm.DB, engine *authz.Engine) *AssignmentService {
	return &AssignmentService{db: db, engine: engine}
}

type CreateAssignmentRequest struct {
	ProjectID uint `json:"project_id" binding:"required"`
	UserID    uint `json:"user_id" binding:"required"`
}

// Create assigns a user to a project. Both sides must exist, and at most one
// assignment may exist per (project, user) pair; a duplicate is rejected with
// a conflict, never upserted.
func (s *AssignmentService) Create(actor authz.Actor, req *CreateAssignmentRequest) (*models.ProjectAssignment, error) {
	if _, err := authorize(s.engine, actor, authz.OpAssignmentCreate, authz.Resource{ProjectID: req.ProjectID}); err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	var existing int64
	if err := s.db.Model(&models.ProjectAssignment{}).
		Where("project_id = ? AND user_id = ?", req.ProjectID, req.UserID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, response.NewConflict("user is already assigned to this project")
	}

	assignment := models.ProjectAssignment{
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, err
	}

	return &assignment, nil
}

// Remove deletes an assignment by ID. Tasks that reference the removed user
// as assignee are left untouched; the membership invariant is only enforced
// at assignment time.
func (s *AssignmentService) Remove(actor authz.Actor, id uint) error {
	if _, err := authorize(s.engine, actor, authz.OpAssignmentRemove, authz.Resource{}); err != nil {
		return err
	}

	result := s.db.Delete(&models.ProjectAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("assignment not found")
	}
	return nil
}

// ListByProject returns the users assigned to a project.
func (s *AssignmentService) ListByProject(actor authz.Actor, projectID uint) ([]models.ProjectAssignment, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if _, err := authorize(s.engine, actor, authz.OpAssignmentList, authz.Resource{ProjectID: projectID}); err != nil {
		return nil, err
	}

	var assignments []models.ProjectAssignment
	if err := s.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListByUser returns the projects a user is assigned to.
func (s *AssignmentService) ListByUser(actor authz.Actor, userID uint) ([]models.ProjectAssignment, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	if _, err := authorize(s.engine, actor, authz.OpAssignmentList, authz.Resource{TargetUserID: userID}); err != nil {
		return nil, err
	}

	var assignments []models.ProjectAssignment
	if err := s.db.Preload("Project").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
