package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a project in the system
type Project struct {
	ID          uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string         `json:"name" gorm:"not null"`
	Description *string        `json:"description,omitempty"`
	Settings    datatypes.JSON `json:"settings,omitempty"`
	CreatedAt   time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// One-to-Many Relations
	Tasks []*Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
}
