package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/taskpilot/pkg/models"
)

// External enum values. The API speaks these; the database stores the domain
// constants from pkg/models. The mapping is total and bidirectional, and an
// unmapped value is an error in both directions, never a silent default.
const (
	StatusTodo       = "Todo"
	StatusInProgress = "InProgress"
	StatusDone       = "Done"
	StatusCancelled  = "Cancelled"

	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// ParseStatus converts an external status value to its domain representation.
func ParseStatus(s string) (models.TaskStatus, error) {
	switch s {
	case StatusTodo:
		return models.TaskStatusTODO, nil
	case StatusInProgress:
		return models.TaskStatusInProgress, nil
	case StatusDone:
		return models.TaskStatusDone, nil
	case StatusCancelled:
		return models.TaskStatusCancelled, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, s)
}

// FormatStatus converts a domain status to its external representation.
func FormatStatus(s models.TaskStatus) (string, error) {
	switch s {
	case models.TaskStatusTODO:
		return StatusTodo, nil
	case models.TaskStatusInProgress:
		return StatusInProgress, nil
	case models.TaskStatusDone:
		return StatusDone, nil
	case models.TaskStatusCancelled:
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("%w: unmapped stored status %q", ErrInvalidArgument, s)
}

// ParsePriority converts an external priority value to its domain representation.
func ParsePriority(p string) (models.TaskPriority, error) {
	switch p {
	case PriorityLow:
		return models.TaskPriorityLow, nil
	case PriorityMedium:
		return models.TaskPriorityMedium, nil
	case PriorityHigh:
		return models.TaskPriorityHigh, nil
	case PriorityCritical:
		return models.TaskPriorityCritical, nil
	}
	return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidArgument, p)
}

// FormatPriority converts a domain priority to its external representation.
func FormatPriority(p models.TaskPriority) (string, error) {
	switch p {
	case models.TaskPriorityLow:
		return PriorityLow, nil
	case models.TaskPriorityMedium:
		return PriorityMedium, nil
	case models.TaskPriorityHigh:
		return PriorityHigh, nil
	case models.TaskPriorityCritical:
		return PriorityCritical, nil
	}
	return "", fmt.Errorf("%w: unmapped stored priority %q", ErrInvalidArgument, p)
}

// TaskView is the client-facing projection of a task.
type TaskView struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Tags        []string   `json:"tags"`
}

// CommentView is the client-facing projection of a comment.
type CommentView struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskPage is one page of search results together with the total size of the
// filtered set, counted independently of the page window.
type TaskPage struct {
	Items      []TaskView `json:"items"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

// NewTaskView projects a stored task for the client, with tag names sorted
// alphabetically.
func NewTaskView(task *models.Task) (TaskView, error) {
	status, err := FormatStatus(task.Status)
	if err != nil {
		return TaskView{}, err
	}
	priority, err := FormatPriority(task.Priority)
	if err != nil {
		return TaskView{}, err
	}
	return TaskView{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Tags:        task.TagNames(),
	}, nil
}

// NewCommentView projects a stored comment for the client.
func NewCommentView(comment *models.Comment) CommentView {
	return CommentView{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}
