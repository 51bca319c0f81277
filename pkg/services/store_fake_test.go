package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/taskpilot/pkg/models"
)

// fakeStore is an in-memory Store for service tests. It mirrors the real
// store's contract: copies in and out, database-default timestamps and ids,
// and a unique constraint on tag names.
type fakeStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*models.Project
	tasks    map[uuid.UUID]*models.Task
	tags     map[uuid.UUID]*models.Tag
	comments []*models.Comment

	tagCreateCalls int
	// racePending simulates a concurrent writer: just before the next
	// CreateTags lands, these names get inserted by "someone else", so the
	// batch hits the unique constraint. The conflict is partial when
	// racePending covers only part of the batch.
	racePending []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects: make(map[uuid.UUID]*models.Project),
		tasks:    make(map[uuid.UUID]*models.Task),
		tags:     make(map[uuid.UUID]*models.Tag),
	}
}

func (f *fakeStore) CreateProject(_ context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	project.ID = uuid.New()
	project.CreatedAt = time.Now().UTC()
	cp := *project
	f.projects[project.ID] = &cp
	return nil
}

func (f *fakeStore) GetProject(_ context.Context, id uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project, ok := f.projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	cp := *project
	return &cp, nil
}

func (f *fakeStore) ListProjects(_ context.Context) ([]*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Project, 0, len(f.projects))
	for _, project := range f.projects {
		cp := *project
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStore) ProjectExists(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.projects[id]
	return ok, nil
}

func (f *fakeStore) CreateTask(_ context.Context, task *models.Task, tags []*models.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	task.ID = uuid.New()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	cp := copyTask(task)
	cp.Tags = copyTags(tags)
	f.tasks[task.ID] = cp
	return nil
}

func (f *fakeStore) GetTask(_ context.Context, id uuid.UUID) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	cp := copyTask(task)
	cp.Tags = copyTags(task.Tags)
	return cp, nil
}

func (f *fakeStore) SaveTask(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.tasks[task.ID]
	if !ok {
		return fmt.Errorf("%w: task %s", ErrNotFound, task.ID)
	}
	cp := copyTask(task)
	cp.Tags = stored.Tags // scalar save never touches associations
	f.tasks[task.ID] = cp
	return nil
}

func (f *fakeStore) ReplaceTaskTags(_ context.Context, task *models.Task, tags []*models.Tag, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.tasks[task.ID]
	if !ok {
		return fmt.Errorf("%w: task %s", ErrNotFound, task.ID)
	}
	stored.Tags = copyTags(tags)
	stored.UpdatedAt = updatedAt
	return nil
}

func (f *fakeStore) SearchTasks(_ context.Context, filter TaskFilter) ([]*models.Task, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Task
	for _, task := range f.tasks {
		if MatchesFilter(task, filter) {
			cp := copyTask(task)
			cp.Tags = copyTags(task.Tags)
			matched = append(matched, cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeStore) FindTagsByName(_ context.Context, names []string) ([]*models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		want[name] = struct{}{}
	}
	var out []*models.Tag
	for _, tag := range f.tags {
		if _, ok := want[tag.Name]; ok {
			cp := *tag
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateTags(_ context.Context, tags []*models.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tagCreateCalls++
	if len(f.racePending) > 0 {
		for _, name := range f.racePending {
			f.insertTagLocked(name)
		}
		f.racePending = nil
	}
	for _, tag := range tags {
		for _, existing := range f.tags {
			if existing.Name == tag.Name {
				return fmt.Errorf("%w: tags_name_key", ErrDuplicateTag)
			}
		}
	}
	for _, tag := range tags {
		tag.ID = f.insertTagLocked(tag.Name)
	}
	return nil
}

func (f *fakeStore) insertTagLocked(name string) uuid.UUID {
	for _, existing := range f.tags {
		if existing.Name == name {
			return existing.ID
		}
	}
	id := uuid.New()
	f.tags[id] = &models.Tag{ID: id, Name: name}
	return id
}

func (f *fakeStore) CreateComment(_ context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now().UTC()
	cp := *comment
	f.comments = append(f.comments, &cp)
	return nil
}

func (f *fakeStore) ListComments(_ context.Context, taskID uuid.UUID) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Comment
	for _, comment := range f.comments {
		if comment.TaskID == taskID {
			cp := *comment
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) commentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.comments)
}

func (f *fakeStore) tagCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tags)
}

func copyTask(task *models.Task) *models.Task {
	cp := *task
	cp.Tags = nil
	cp.Comments = nil
	cp.Project = nil
	return &cp
}

func copyTags(tags []*models.Tag) []*models.Tag {
	out := make([]*models.Tag, 0, len(tags))
	for _, tag := range tags {
		cp := *tag
		out = append(out, &cp)
	}
	return out
}
