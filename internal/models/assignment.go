package models

import "time"

// ProjectAssignment is the join record granting a User membership in a
// Project. At most one record may exist per (project_id, user_id) pair;
// duplicates are rejected, not upserted.
type ProjectAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectAssignment) TableName() string { return "project_assignments" }
