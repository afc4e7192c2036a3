package models

import "time"

// TaskStatus values. No transition graph is enforced.
const (
	TaskStatusToDo       = "ToDo"
	TaskStatusInProgress = "InProgress"
	TaskStatusDone       = "Done"
)

// ValidTaskStatus reports whether s is a defined task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task belongs to exactly one Project and optionally references one User as
// assignee. The assignee must hold an assignment to the task's project at the
// moment it is set; the invariant is not re-validated if the assignment is
// later removed.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:2000" json:"description"`
	Status      string     `gorm:"size:50;default:ToDo" json:"status"`
	ProjectID   uint       `gorm:"index;not null" json:"project_id"`
	Project     *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedTo  *uint      `gorm:"index" json:"assigned_to"`
	Assignee    *User      `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }
