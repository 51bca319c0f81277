package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/kutbudev/taskpilot/pkg/models"
)

// Service orchestrates the task lifecycle: creation, field updates, status
// transitions, tag replacement and comment attachment. It holds no state of
// its own beyond the store handle and is safe for concurrent use.
type Service struct {
	store Store
}

// New returns a Service backed by the given store.
func New(store Store) *Service {
	return &Service{store: store}
}

// CreateTaskInput carries the payload for creating a task. Status is not
// accepted: every new task starts as Todo regardless of what a caller sends.
type CreateTaskInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description *string
	Priority    string
	DueDate     *time.Time
	Tags        []string
}

// CreateTask creates a task under an existing project and returns its
// projection.
func (s *Service) CreateTask(ctx context.Context, input CreateTaskInput) (TaskView, error) {
	exists, err := s.store.ProjectExists(ctx, input.ProjectID)
	if err != nil {
		return TaskView{}, err
	}
	if !exists {
		return TaskView{}, fmt.Errorf("%w: project %s", ErrNotFound, input.ProjectID)
	}

	priority := models.TaskPriorityMedium
	if input.Priority != "" {
		priority, err = ParsePriority(input.Priority)
		if err != nil {
			return TaskView{}, err
		}
	}

	var tags []*models.Tag
	if len(input.Tags) > 0 {
		tags, err = s.upsertTags(ctx, input.Tags)
		if err != nil {
			return TaskView{}, err
		}
	}

	task := &models.Task{
		ProjectID:   input.ProjectID,
		Title:       strings.TrimSpace(input.Title),
		Description: trimAndNil(input.Description),
		Status:      models.TaskStatusTODO,
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	if err := s.store.CreateTask(ctx, task, tags); err != nil {
		return TaskView{}, err
	}

	created, err := s.store.GetTask(ctx, task.ID)
	if err != nil {
		return TaskView{}, err
	}
	return NewTaskView(created)
}

// GetTask returns the projection of a single task.
func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (TaskView, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return TaskView{}, err
	}
	return NewTaskView(task)
}

// UpdateTaskInput carries the replaceable task fields. Status and tags have
// their own operations and are never touched here.
type UpdateTaskInput struct {
	Title       string
	Description *string
	Priority    string
	DueDate     *time.Time
}

// UpdateTask overwrites a task's title, description, priority and due date,
// advancing its update timestamp.
func (s *Service) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (TaskView, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return TaskView{}, err
	}

	priority, err := ParsePriority(input.Priority)
	if err != nil {
		return TaskView{}, err
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = trimAndNil(input.Description)
	task.Priority = priority
	task.DueDate = input.DueDate
	task.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveTask(ctx, task); err != nil {
		return TaskView{}, err
	}

	updated, err := s.store.GetTask(ctx, id)
	if err != nil {
		return TaskView{}, err
	}
	return NewTaskView(updated)
}

// UpdateTaskStatus moves a task through the status state machine. Requesting
// the current status is a no-op success that leaves the update timestamp
// untouched; an illegal transition fails without writing anything.
func (s *Service) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status string) (TaskView, error) {
	requested, err := ParseStatus(status)
	if err != nil {
		return TaskView{}, err
	}

	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return TaskView{}, err
	}

	if task.Status == requested {
		return NewTaskView(task)
	}
	if !task.Status.CanTransitionTo(requested) {
		return TaskView{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, requested)
	}

	task.Status = requested
	task.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveTask(ctx, task); err != nil {
		return TaskView{}, err
	}

	updated, err := s.store.GetTask(ctx, id)
	if err != nil {
		return TaskView{}, err
	}
	return NewTaskView(updated)
}

// ReplaceTaskTags swaps a task's tag set wholesale. Clearing to an empty set
// is itself a mutation, so the update timestamp advances either way.
func (s *Service) ReplaceTaskTags(ctx context.Context, id uuid.UUID, rawTags []string) (TaskView, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return TaskView{}, err
	}

	var tags []*models.Tag
	if len(rawTags) > 0 {
		tags, err = s.upsertTags(ctx, rawTags)
		if err != nil {
			return TaskView{}, err
		}
	}

	if err := s.store.ReplaceTaskTags(ctx, task, tags, time.Now().UTC()); err != nil {
		return TaskView{}, err
	}

	updated, err := s.store.GetTask(ctx, id)
	if err != nil {
		return TaskView{}, err
	}
	return NewTaskView(updated)
}

// AddComment appends a comment to an existing task. Comments are not task
// mutations: the task's update timestamp does not move.
func (s *Service) AddComment(ctx context.Context, taskID uuid.UUID, text string) (CommentView, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return CommentView{}, err
	}

	comment := &models.Comment{
		TaskID: task.ID,
		Text:   strings.TrimSpace(text),
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return CommentView{}, err
	}
	return NewCommentView(comment), nil
}

// ListComments returns a task's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, taskID uuid.UUID) ([]CommentView, error) {
	if _, err := s.store.GetTask(ctx, taskID); err != nil {
		return nil, err
	}
	comments, err := s.store.ListComments(ctx, taskID)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, NewCommentView(comment))
	}
	return views, nil
}

// CreateProject creates a project. Settings is an optional free-form JSON
// document stored as-is.
func (s *Service) CreateProject(ctx context.Context, name string, description *string, settings datatypes.JSON) (*models.Project, error) {
	project := &models.Project{
		Name:        strings.TrimSpace(name),
		Description: trimAndNil(description),
		Settings:    settings,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns a single project.
func (s *Service) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.store.GetProject(ctx, id)
}

// ListProjects returns all projects.
func (s *Service) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return s.store.ListProjects(ctx)
}

// trimAndNil trims the value and collapses whitespace-only input to nil so
// an empty description serializes as absent rather than as "".
func trimAndNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
