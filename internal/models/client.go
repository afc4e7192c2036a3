package models

import "time"

// Client is a customer that projects are delivered for. Clients carry no
// authorization role.
type Client struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	ContactInfo string    `gorm:"size:500" json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
