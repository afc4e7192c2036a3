package services

import (
	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
)

type DashboardService struct {
	db     *gorm.DB
	engine *authz.Engine
}

func NewDashboardService(db *gorm.DB, engine *authz.Engine) *DashboardService {
	return &DashboardService{db: db, engine: engine}
}

type DashboardStats struct {
	TotalClients      int64 `json:"total_clients"`
	TotalProjects     int64 `json:"total_projects"`
	ActiveProjects    int64 `json:"active_projects"`
	CompletedProjects int64 `json:"completed_projects"`
	TotalTasks        int64 `json:"total_tasks"`
	OpenTasks         int64 `json:"open_tasks"`
	CompletedTasks    int64 `json:"completed_tasks"`
}

// scopedProjects builds a fresh project query narrowed to the actor's
// visibility. Each call returns a new chain so counts don't leak conditions
// into each other.
func (s *DashboardService) scopedProjects(actor authz.Actor) *gorm.DB {
	q := s.db.Model(&models.Project{})
	if actor.Role != authz.RoleAdmin {
		q = q.Joins("JOIN project_assignments ON project_assignments.project_id = projects.id").
			Where("project_assignments.user_id = ?", actor.UserID)
	}
	return q
}

func (s *DashboardService) scopedTasks(actor authz.Actor) *gorm.DB {
	q := s.db.Model(&models.Task{})
	switch actor.Role {
	case authz.RoleAdmin:
	case authz.RoleProjectManager:
		q = q.Joins("JOIN project_assignments ON project_assignments.project_id = tasks.project_id").
			Where("project_assignments.user_id = ?", actor.UserID)
	default:
		q = q.Where("tasks.assigned_to = ?", actor.UserID)
	}
	return q
}

func (s *DashboardService) scopedClients(actor authz.Actor) *gorm.DB {
	q := s.db.Model(&models.Client{})
	if actor.Role != authz.RoleAdmin {
		q = q.Joins("JOIN projects ON projects.client_id = clients.id").
			Joins("JOIN project_assignments ON project_assignments.project_id = projects.id").
			Where("project_assignments.user_id = ?", actor.UserID).
			Distinct("clients.id")
	}
	return q
}

// Stats returns aggregate counts over the data the actor may see: everything
// for an Admin, otherwise only assigned projects and the corresponding task
// scope. The narrowing follows the same rules as the list endpoints.
func (s *DashboardService) Stats(actor authz.Actor) (*DashboardStats, error) {
	if _, err := authorize(s.engine, actor, authz.OpDashboardView, authz.Resource{}); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}

	if err := s.scopedClients(actor).Count(&stats.TotalClients).Error; err != nil {
		return nil, err
	}
	if err := s.scopedProjects(actor).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := s.scopedProjects(actor).
		Where("projects.status = ?", models.ProjectStatusInProgress).
		Count(&stats.ActiveProjects).Error; err != nil {
		return nil, err
	}
	if err := s.scopedProjects(actor).
		Where("projects.status = ?", models.ProjectStatusCompleted).
		Count(&stats.CompletedProjects).Error; err != nil {
		return nil, err
	}

	if err := s.scopedTasks(actor).Count(&stats.TotalTasks).Error; err != nil {
		return nil, err
	}
	if err := s.scopedTasks(actor).
		Where("tasks.status <> ?", models.TaskStatusDone).
		Count(&stats.OpenTasks).Error; err != nil {
		return nil, err
	}
	if err := s.scopedTasks(actor).
		Where("tasks.status = ?", models.TaskStatusDone).
		Count(&stats.CompletedTasks).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
