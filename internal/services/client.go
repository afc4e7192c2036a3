package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
	"github.com/planboard/planboard/pkg/response"
)

type ClientService struct {
	db     *gorm.DB
	engine *authz.Engine
}

func NewClientService(db *gorm.DB, engine *authz.Engine) *ClientService {
	return &ClientService{db: db, engine: engine}
}

type CreateClientRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contact_info"`
}

type UpdateClientRequest struct {
	Name        string  `json:"name"`
	ContactInfo *string `json:"contact_info"`
}

// List returns all clients.
func (s *ClientService) List(actor authz.Actor) ([]models.Client, error) {
	if _, err := authorize(s.engine, actor, authz.OpClientList, authz.Resource{}); err != nil {
		return nil, err
	}

	var clients []models.Client
	if err := s.db.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// GetByID returns one client.
func (s *ClientService) GetByID(actor authz.Actor, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("client not found")
		}
		return nil, err
	}

	if _, err := authorize(s.engine, actor, authz.OpClientRead, authz.Resource{}); err != nil {
		return nil, err
	}

	return &client, nil
}

// Create creates a new client.
func (s *ClientService) Create(actor authz.Actor, req *CreateClientRequest) (*models.Client, error) {
	if _, err := authorize(s.engine, actor, authz.OpClientCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	client := models.Client{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Update updates a client's fields.
func (s *ClientService) Update(actor authz.Actor, id uint, req *UpdateClientRequest) (*models.Client, error) {
	if _, err := authorize(s.engine, actor, authz.OpClientUpdate, authz.Resource{}); err != nil {
		return nil, err
	}

	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("client not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.ContactInfo != nil {
		updates["contact_info"] = *req.ContactInfo
	}

	if err := s.db.Model(&client).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Delete removes a client. A client that still has projects cannot be
// deleted; the projects must be removed first.
func (s *ClientService) Delete(actor authz.Actor, id uint) error {
	if _, err := authorize(s.engine, actor, authz.OpClientDelete, authz.Resource{}); err != nil {
		return err
	}

	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("client not found")
		}
		return err
	}

	var projects int64
	if err := s.db.Model(&models.Project{}).Where("client_id = ?", id).Count(&projects).Error; err != nil {
		return err
	}
	if projects > 0 {
		return response.NewConflict("client has projects and cannot be deleted")
	}

	return s.db.Delete(&client).Error
}
