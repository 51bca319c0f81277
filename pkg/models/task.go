package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Task represents a task in the system
type Task struct {
	ID          uuid.UUID    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID   uuid.UUID    `json:"project_id" gorm:"not null;type:uuid;index:idx_tasks_project_status"`
	Title       string       `json:"title" gorm:"not null"`
	Description *string      `json:"description,omitempty"`
	Status      TaskStatus   `json:"status" gorm:"not null;type:varchar(20);index:idx_tasks_project_status"`
	Priority    TaskPriority `json:"priority" gorm:"not null;type:varchar(1)"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_tasks_created_at,sort:desc"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`

	// One-to-Many Relations
	Comments []*Comment `json:"comments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`

	// Many-to-Many Relations
	Tags []*Tag `json:"tags,omitempty" gorm:"many2many:task_tags"`
}

// TagNames returns the task's tag names sorted alphabetically.
// Clients only ever see tag names, never tag rows.
func (t *Task) TagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}
	sort.Strings(names)
	return names
}
