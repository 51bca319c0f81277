package models

import (
	"github.com/google/uuid"
)

// Tag represents a shared, normalized label in the system. Names are stored
// trimmed and lowercased; uniqueness is enforced by the database so that two
// concurrent upserts of the same new name cannot both win.
type Tag struct {
	ID   uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name string    `json:"name" gorm:"not null;unique;index:idx_tags_name"`

	// Many-to-Many Relations
	Tasks []*Task `json:"tasks,omitempty" gorm:"many2many:task_tags"`
}
