package services

import (
	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/models"
)

// MembershipIndex answers assignment-relation questions directly against the
// project_assignments table. It backs the authorization engine, so its
// queries must stay cheap: one round trip per question.
type MembershipIndex struct {
	db *gorm.DB
}

func NewMembershipIndex(db *gorm.DB) *MembershipIndex {
	return &MembershipIndex{db: db}
}

// IsAssigned reports whether the user holds an assignment to the project.
func (m *MembershipIndex) IsAssigned(userID, projectID uint) (bool, error) {
	var count int64
	err := m.db.Model(&models.ProjectAssignment{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SharesProject reports whether two users are both assigned to at least one
// common project, resolved as a single self-join rather than fetching each
// user's memberships separately.
func (m *MembershipIndex) SharesProject(userA, userB uint) (bool, error) {
	var count int64
	err := m.db.Table("project_assignments AS pa").
		Joins("JOIN project_assignments AS ua ON pa.project_id = ua.project_id").
		Where("pa.user_id = ? AND ua.user_id = ?", userA, userB).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
