package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kutbudev/taskpilot/pkg/models"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchParams are the raw, client-supplied search arguments. Status and
// priority carry external enum values; empty strings mean "no filter".
type SearchParams struct {
	ProjectID string
	Status    string
	Priority  string
	Tag       string
	Search    string
	Page      int
	PageSize  int
}

// normalizePage coerces a non-positive page to the first page.
func normalizePage(page int) int {
	if page <= 0 {
		return defaultPage
	}
	return page
}

// normalizePageSize coerces any size outside (0, 100] back to the default.
// Out-of-range values fall back to 20 rather than clamping to the maximum;
// 100 itself passes through.
func normalizePageSize(size int) int {
	if size <= 0 || size > maxPageSize {
		return defaultPageSize
	}
	return size
}

// SearchTasks returns one page of the filtered task collection, newest
// first, together with the total size of the filtered set.
func (s *Service) SearchTasks(ctx context.Context, params SearchParams) (TaskPage, error) {
	filter := TaskFilter{
		Tag:      params.Tag,
		Search:   params.Search,
		Page:     normalizePage(params.Page),
		PageSize: normalizePageSize(params.PageSize),
	}

	if params.ProjectID != "" {
		projectID, err := uuid.Parse(params.ProjectID)
		if err != nil {
			return TaskPage{}, fmt.Errorf("%w: invalid project id %q", ErrInvalidArgument, params.ProjectID)
		}
		filter.ProjectID = &projectID
	}
	if params.Status != "" {
		status, err := ParseStatus(params.Status)
		if err != nil {
			return TaskPage{}, err
		}
		filter.Status = &status
	}
	if params.Priority != "" {
		priority, err := ParsePriority(params.Priority)
		if err != nil {
			return TaskPage{}, err
		}
		filter.Priority = &priority
	}

	tasks, total, err := s.store.SearchTasks(ctx, filter)
	if err != nil {
		return TaskPage{}, err
	}

	items := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		view, err := NewTaskView(task)
		if err != nil {
			return TaskPage{}, err
		}
		items = append(items, view)
	}
	return TaskPage{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

// MatchesFilter reports whether a task satisfies the non-paging parts of a
// filter. The SQL store composes the same predicates in the database; this
// form exists so filter semantics have a single testable definition.
func MatchesFilter(task *models.Task, filter TaskFilter) bool {
	if filter.ProjectID != nil && task.ProjectID != *filter.ProjectID {
		return false
	}
	if filter.Status != nil && task.Status != *filter.Status {
		return false
	}
	if filter.Priority != nil && task.Priority != *filter.Priority {
		return false
	}
	if filter.Tag != "" {
		want := strings.ToLower(strings.TrimSpace(filter.Tag))
		found := false
		for _, tag := range task.Tags {
			if strings.ToLower(strings.TrimSpace(tag.Name)) == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		inTitle := strings.Contains(strings.ToLower(task.Title), needle)
		inDescription := task.Description != nil &&
			strings.Contains(strings.ToLower(*task.Description), needle)
		if !inTitle && !inDescription {
			return false
		}
	}
	return true
}
