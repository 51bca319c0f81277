package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a task comment. Comments are append-only: created once,
// never edited or deleted.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID    uuid.UUID `json:"task_id" gorm:"not null;type:uuid;index:idx_comments_task"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	Task *Task `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}
