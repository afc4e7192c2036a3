package models

import "time"

// User represents a system user. Role holds one of the authz.Role values;
// it is validated at the edges and treated as a closed enum everywhere else.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FullName  string     `gorm:"size:200" json:"full_name"`
	Email     string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string     `gorm:"size:255" json:"-"` // bcrypt hash, empty for LDAP users
	Role      string     `gorm:"size:50;not null" json:"role"`
	AuthType  string     `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }
