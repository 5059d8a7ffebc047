package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a registered user. Admins moderate articles and answer interactions.
type Client struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"nome"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Phone     string    `gorm:"size:20" json:"telefone,omitempty"`
	City      string    `gorm:"size:100" json:"cidade,omitempty"`
	Admin     bool      `gorm:"default:false;not null" json:"admin,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
