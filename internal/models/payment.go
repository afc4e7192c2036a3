package models

import "time"

// Payment is a plain ledger record against a project. It carries no billing
// logic and is not authorization-relevant beyond project visibility.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Amount    int64     `gorm:"not null" json:"amount"` // smallest currency unit
	Date      time.Time `json:"date"`
	ProjectID uint      `gorm:"index;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
