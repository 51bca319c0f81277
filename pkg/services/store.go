package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/taskpilot/pkg/models"
)

// TaskFilter describes an already-normalized task query: filters are AND-ed,
// page and page size are positive, and enums are domain values.
type TaskFilter struct {
	ProjectID *uuid.UUID
	Status    *models.TaskStatus
	Priority  *models.TaskPriority
	Tag       string
	Search    string
	Page      int
	PageSize  int
}

// Store is the persistence collaborator the service consumes. Each mutating
// call is atomic: a concurrent reader sees either all of its effects or none.
type Store interface {
	// Projects
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
	ProjectExists(ctx context.Context, id uuid.UUID) (bool, error)

	// Tasks
	CreateTask(ctx context.Context, task *models.Task, tags []*models.Tag) error
	GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	SaveTask(ctx context.Context, task *models.Task) error
	ReplaceTaskTags(ctx context.Context, task *models.Task, tags []*models.Tag, updatedAt time.Time) error
	SearchTasks(ctx context.Context, filter TaskFilter) ([]*models.Task, int64, error)

	// Tags
	FindTagsByName(ctx context.Context, names []string) ([]*models.Tag, error)
	CreateTags(ctx context.Context, tags []*models.Tag) error

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, taskID uuid.UUID) ([]*models.Comment, error)
}
