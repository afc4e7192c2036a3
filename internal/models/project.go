package models

import "time"

// ProjectStatus values. Free-form progression: any permitted actor may set
// any value, including moving backward.
const (
	ProjectStatusNotStarted = "NotStarted"
	ProjectStatusInProgress = "InProgress"
	ProjectStatusCompleted  = "Completed"
)

// ValidProjectStatus reports whether s is a defined project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusNotStarted, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project belongs to exactly one Client and owns tasks, assignments and
// payments. Visibility is derived from project_assignments, never stored here.
type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"size:2000" json:"description"`
	Status      string     `gorm:"size:50;default:NotStarted" json:"status"`
	ClientID    uint       `gorm:"index;not null" json:"client_id"`
	Client      *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
