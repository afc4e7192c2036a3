package models

import "time"

// RefreshToken stores the hash of an issued refresh token. The raw value is
// only ever returned to the client once.
type RefreshToken struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	TokenHash   string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt   time.Time  `gorm:"index;not null" json:"expires_at"`
	RevokedAt   *time.Time `gorm:"index" json:"revoked_at,omitempty"`
	CreatedByIP string     `gorm:"size:64" json:"created_by_ip,omitempty"`
	UserAgent   string     `gorm:"size:255" json:"user_agent,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
