package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
	"github.com/planboard/planboard/pkg/response"
)

type UserService struct {
	db     *gorm.DB
	engine *authz.Engine
}

func NewUserService(db *gorm.DB, engine *authz.Engine) *UserService {
	return &UserService{db: db, engine: engine}
}

// List returns all users. TeamMembers are denied; they have no need for the
// directory.
func (s *UserService) List(actor authz.Actor) ([]models.User, error) {
	if _, err := authorize(s.engine, actor, authz.OpUserList, authz.Resource{}); err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns one user.
func (s *UserService) GetByID(actor authz.Actor, id uint) (*models.User, error) {
	if _, err := authorize(s.engine, actor, authz.OpUserList, authz.Resource{TargetUserID: id}); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes a user and, in the same transaction, their project
// assignments, their refresh tokens, and the assignee reference on any task
// still pointing at them. Tasks themselves survive, unassigned.
func (s *UserService) Delete(actor authz.Actor, id uint) error {
	if _, err := authorize(s.engine, actor, authz.OpUserDelete, authz.Resource{TargetUserID: id}); err != nil {
		return err
	}

	if actor.UserID == id {
		return response.NewConflict("you cannot delete your own account")
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("user not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).
			Where("assigned_to = ?", id).
			Update("assigned_to", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
