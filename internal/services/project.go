package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
	"github.com/planboard/planboard/pkg/response"
)

type ProjectService struct {
	db     *gorm.DB
	engine *authz.Engine
}

func NewProjectService(db *gorm.DB, engine *authz.Engine) *ProjectService {
	return &ProjectService{db: db, engine: engine}
}

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ClientID    uint       `json:"client_id" binding:"required"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	ClientID    *uint      `json:"client_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List returns the projects the actor may see: all of them for an Admin,
// only assigned projects for everyone else. The scope is applied as a join,
// never by filtering in memory.
func (s *ProjectService) List(actor authz.Actor) ([]models.Project, error) {
	decision, err := authorize(s.engine, actor, authz.OpProjectList, authz.Resource{})
	if err != nil {
		return nil, err
	}

	query := s.db.Preload("Client").Order("projects.created_at DESC")
	if decision.Projects == authz.ProjectScopeAssigned {
		query = query.
			Joins("JOIN project_assignments ON project_assignments.project_id = projects.id").
			Where("project_assignments.user_id = ?", actor.UserID)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID returns one project. Non-admins must be assigned to it.
func (s *ProjectService) GetByID(actor authz.Actor, id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Client").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if _, err := authorize(s.engine, actor, authz.OpProjectRead, authz.Resource{ProjectID: id}); err != nil {
		return nil, err
	}

	return &project, nil
}

// Create creates a new project under an existing client.
func (s *ProjectService) Create(actor authz.Actor, req *CreateProjectRequest) (*models.Project, error) {
	if _, err := authorize(s.engine, actor, authz.OpProjectCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	if req.Status == "" {
		req.Status = models.ProjectStatusNotStarted
	}
	if !models.ValidProjectStatus(req.Status) {
		return nil, response.NewBadRequest("invalid project status: " + req.Status)
	}

	var client models.Client
	if err := s.db.First(&client, req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("client not found")
		}
		return nil, err
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		ClientID:    req.ClientID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// Update updates a project's fields. Only non-zero request fields are
// applied.
func (s *ProjectService) Update(actor authz.Actor, id uint, req *UpdateProjectRequest) (*models.Project, error) {
	if _, err := authorize(s.engine, actor, authz.OpProjectUpdate, authz.Resource{ProjectID: id}); err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != "" {
		if !models.ValidProjectStatus(req.Status) {
			return nil, response.NewBadRequest("invalid project status: " + req.Status)
		}
		updates["status"] = req.Status
	}
	if req.ClientID != nil {
		var client models.Client
		if err := s.db.First(&client, *req.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFound("client not found")
			}
			return nil, err
		}
		updates["client_id"] = *req.ClientID
	}
	if req.StartDate != nil {
		updates["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate
	}

	if err := s.db.Model(&project).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// UpdateStatus changes only the project's status. Any defined status value is
// accepted from any permitted actor, including moving backward.
func (s *ProjectService) UpdateStatus(actor authz.Actor, id uint, status string) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !models.ValidProjectStatus(status) {
		return nil, response.NewBadRequest("invalid project status: " + status)
	}

	if _, err := authorize(s.engine, actor, authz.OpProjectUpdateStatus, authz.Resource{ProjectID: id}); err != nil {
		return nil, err
	}

	if err := s.db.Model(&project).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes a project together with its tasks, assignments and payments
// in one transaction.
func (s *ProjectService) Delete(actor authz.Actor, id uint) error {
	if _, err := authorize(s.engine, actor, authz.OpProjectDelete, authz.Resource{ProjectID: id}); err != nil {
		return err
	}

	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("project not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}
