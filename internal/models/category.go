package models

import (
	"time"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"nome"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Only filled by the category detail endpoint
	Articles []Article `gorm:"foreignKey:CategoryID" json:"noticias,omitempty"`
}
