package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
	"github.com/planboard/planboard/pkg/response"
)

type TaskService struct {
	db     *gorm.DB
	engine *authz.Engine
}

func NewTaskService(db *gorm.DB, engine *authz.Engine) *TaskService {
	return &TaskService{db: db, engine: engine}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ProjectID   uint       `json:"project_id" binding:"required"`
	AssignedTo  *uint      `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	ProjectID   *uint      `json:"project_id"`
	AssignedTo  *uint      `json:"assigned_to"` // 0 clears the assignee
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// checkAssignee verifies that the user exists and holds an assignment to the
// project. Run inside the same transaction as the task write so a concurrent
// assignment removal cannot slip between check and write.
func checkAssignee(tx *gorm.DB, userID, projectID uint) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("user not found")
		}
		return err
	}

	var count int64
	if err := tx.Model(&models.ProjectAssignment{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return response.NewInvalidAssignment("user must be assigned to the project before being assigned tasks")
	}
	return nil
}

// Create creates a task under an existing project. If an assignee is given,
// that user must already be assigned to the project.
func (s *TaskService) Create(actor authz.Actor, req *CreateTaskRequest) (*models.Task, error) {
	if _, err := authorize(s.engine, actor, authz.OpTaskCreate, authz.Resource{ProjectID: req.ProjectID}); err != nil {
		return nil, err
	}

	if req.Status == "" {
		req.Status = models.TaskStatusToDo
	}
	if !models.ValidTaskStatus(req.Status) {
		return nil, response.NewBadRequest("invalid task status: " + req.Status)
	}

	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.AssignedTo != nil {
			if err := checkAssignee(tx, *req.AssignedTo, req.ProjectID); err != nil {
				return err
			}
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// List returns the tasks the actor may see: everything for an Admin, tasks
// in assigned projects for a ProjectManager, own tasks for a TeamMember.
func (s *TaskService) List(actor authz.Actor) ([]models.Task, error) {
	decision, err := authorize(s.engine, actor, authz.OpTaskList, authz.Resource{})
	if err != nil {
		return nil, err
	}

	query := s.db.Preload("Assignee").Order("tasks.created_at DESC")
	switch decision.Tasks {
	case authz.TaskScopeAssignedProjects:
		query = query.
			Joins("JOIN project_assignments ON project_assignments.project_id = tasks.project_id").
			Where("project_assignments.user_id = ?", actor.UserID)
	case authz.TaskScopeOwn:
		query = query.Where("tasks.assigned_to = ?", actor.UserID)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByProject returns all tasks of one project. Non-admins must be
// assigned to the project.
func (s *TaskService) ListByProject(actor authz.Actor, projectID uint) ([]models.Task, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if _, err := authorize(s.engine, actor, authz.OpTaskListByProject, authz.Resource{ProjectID: projectID}); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByUser returns the tasks assigned to one user. A ProjectManager may
// only look at users they share a project with; a TeamMember only at
// themselves.
func (s *TaskService) ListByUser(actor authz.Actor, userID uint) ([]models.Task, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	if _, err := authorize(s.engine, actor, authz.OpTaskListByUser, authz.Resource{TargetUserID: userID}); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Preload("Project").
		Where("assigned_to = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID returns one task. A TeamMember may only read their own task.
func (s *TaskService) GetByID(actor authz.Actor, id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Assignee").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}

	res := authz.Resource{ProjectID: task.ProjectID, TaskAssigneeID: task.AssignedTo}
	if _, err := authorize(s.engine, actor, authz.OpTaskRead, res); err != nil {
		return nil, err
	}

	return &task, nil
}

// Update updates a task's fields. Only non-zero request fields are applied.
// Changing the assignee re-validates project membership against the task's
// (possibly updated) project.
func (s *TaskService) Update(actor authz.Actor, id uint, req *UpdateTaskRequest) (*models.Task, error) {
	if _, err := authorize(s.engine, actor, authz.OpTaskUpdate, authz.Resource{}); err != nil {
		return nil, err
	}

	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != "" {
		if !models.ValidTaskStatus(req.Status) {
			return nil, response.NewBadRequest("invalid task status: " + req.Status)
		}
		updates["status"] = req.Status
	}
	if req.DueDate != nil {
		updates["due_date"] = req.DueDate
	}

	targetProject := task.ProjectID
	if req.ProjectID != nil {
		var project models.Project
		if err := s.db.First(&project, *req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFound("project not found")
			}
			return nil, err
		}
		targetProject = *req.ProjectID
		updates["project_id"] = targetProject
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.AssignedTo != nil {
			if *req.AssignedTo == 0 {
				updates["assigned_to"] = nil
			} else {
				if err := checkAssignee(tx, *req.AssignedTo, targetProject); err != nil {
					return err
				}
				updates["assigned_to"] = *req.AssignedTo
			}
		}
		return tx.Model(&task).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateStatus changes only the task's status. A TeamMember may only move
// their own task; no transition graph is enforced beyond the defined values.
func (s *TaskService) UpdateStatus(actor authz.Actor, id uint, status string) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}

	if !models.ValidTaskStatus(status) {
		return nil, response.NewBadRequest("invalid task status: " + status)
	}

	res := authz.Resource{ProjectID: task.ProjectID, TaskAssigneeID: task.AssignedTo}
	if _, err := authorize(s.engine, actor, authz.OpTaskUpdateStatus, res); err != nil {
		return nil, err
	}

	if err := s.db.Model(&task).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(actor authz.Actor, id uint) error {
	if _, err := authorize(s.engine, actor, authz.OpTaskDelete, authz.Resource{}); err != nil {
		return err
	}

	result := s.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("task not found")
	}
	return nil
}
