package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kutbudev/taskpilot/pkg/models"
	"github.com/kutbudev/taskpilot/pkg/services"
)

// Store is the gorm-backed implementation of services.Store. Every mutating
// method runs in a transaction so concurrent readers never see a task with
// half of an operation's effects applied.
type Store struct {
	db *gorm.DB
}

// NewStore returns a Store over the given connection.
func NewStore(d *Database) *Store {
	return &Store{db: d.DB}
}

// CreateProject inserts a new project.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

// GetProject loads a project by id.
func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: project %s", services.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns all projects, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// ProjectExists probes for a project without loading it.
func (s *Store) ProjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CreateTask inserts a task and its tag associations in one transaction.
func (s *Store) CreateTask(ctx context.Context, task *models.Task, tags []*models.Tag) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(task).Association("Tags").Append(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTask loads a task with its tags.
func (s *Store) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).Preload("Tags").First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: task %s", services.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// SaveTask writes a task's scalar columns. Associations are managed through
// CreateTask and ReplaceTaskTags, never by a save.
func (s *Store) SaveTask(ctx context.Context, task *models.Task) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// ReplaceTaskTags swaps a task's tag associations wholesale and stamps the
// task, atomically.
func (s *Store) ReplaceTaskTags(ctx context.Context, task *models.Task, tags []*models.Tag, updatedAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assoc := tx.Model(task).Association("Tags")
		if len(tags) == 0 {
			if err := assoc.Clear(); err != nil {
				return err
			}
		} else if err := assoc.Replace(tags); err != nil {
			return err
		}
		return tx.Model(task).Update("updated_at", updatedAt).Error
	})
}

// SearchTasks returns one page of the filtered task set, newest first with
// id as the tiebreaker, plus the total count of the filtered set.
func (s *Store) SearchTasks(ctx context.Context, filter services.TaskFilter) ([]*models.Task, int64, error) {
	var total int64
	if err := s.applyFilter(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []*models.Task
	err := s.applyFilter(ctx, filter).
		Preload("Tags").
		Order("tasks.created_at DESC, tasks.id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (s *Store) applyFilter(ctx context.Context, filter services.TaskFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Task{})
	if filter.ProjectID != nil {
		q = q.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		q = q.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.Tag != "" {
		name := strings.ToLower(strings.TrimSpace(filter.Tag))
		q = q.Where("tasks.id IN (?)", s.db.Table("task_tags").
			Select("task_tags.task_id").
			Joins("JOIN tags ON tags.id = task_tags.tag_id").
			Where("LOWER(tags.name) = ?", name))
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		q = q.Where("tasks.title ILIKE ? OR tasks.description ILIKE ?", pattern, pattern)
	}
	return q
}

// likeEscaper neutralizes LIKE metacharacters so free-text search matches
// them literally; "100%" must not match every task.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// FindTagsByName loads the tag rows whose names are in the given set.
func (s *Store) FindTagsByName(ctx context.Context, names []string) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&tags).Error
	return tags, err
}

// CreateTags inserts new tag rows in one batch. A unique-constraint hit is
// reported as services.ErrDuplicateTag so the caller can retry as a lookup.
func (s *Store) CreateTags(ctx context.Context, tags []*models.Tag) error {
	err := s.db.WithContext(ctx).Create(&tags).Error
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		(errors.As(err, &pqErr) && pqErr.Code == "23505") {
		return fmt.Errorf("%w: %v", services.ErrDuplicateTag, err)
	}
	return err
}

// CreateComment appends a comment row.
func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// ListComments returns a task's comments, oldest first.
func (s *Store) ListComments(ctx context.Context, taskID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
