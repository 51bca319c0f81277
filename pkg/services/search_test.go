package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kutbudev/taskpilot/pkg/models"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{7, 7},
	}
	for _, tt := range tests {
		if got := normalizePage(tt.in); got != tt.want {
			t.Errorf("normalizePage(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePageSize(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 20},
		{-5, 20},
		{500, 20}, // out of range falls back to the default, not the max
		{101, 20},
		{1, 1},
		{20, 20},
		{100, 100}, // the maximum itself passes through
	}
	for _, tt := range tests {
		if got := normalizePageSize(tt.in); got != tt.want {
			t.Errorf("normalizePageSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMatchesFilter(t *testing.T) {
	desc := "Fix the LOGIN form"
	task := &models.Task{
		Status:      models.TaskStatusDone,
		Priority:    models.TaskPriorityHigh,
		Title:       "Broken login",
		Description: &desc,
		Tags:        []*models.Tag{{Name: "urgent"}, {Name: "auth"}},
	}
	noDesc := &models.Task{Title: "Untitled chore", Status: models.TaskStatusTODO, Priority: models.TaskPriorityLow}

	statusDone := models.TaskStatusDone
	statusTodo := models.TaskStatusTODO

	tests := []struct {
		name   string
		task   *models.Task
		filter TaskFilter
		want   bool
	}{
		{"empty filter matches", task, TaskFilter{}, true},
		{"status match", task, TaskFilter{Status: &statusDone}, true},
		{"status mismatch", task, TaskFilter{Status: &statusTodo}, false},
		{"tag case-insensitive", task, TaskFilter{Tag: " URGENT "}, true},
		{"tag absent", task, TaskFilter{Tag: "backend"}, false},
		{"free text in title", task, TaskFilter{Search: "LOGIN"}, true},
		{"free text in description", task, TaskFilter{Search: "form"}, true},
		{"free text missing", task, TaskFilter{Search: "payments"}, false},
		{"free text never matches nil description", noDesc, TaskFilter{Search: "form"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFilter(tt.task, tt.filter); got != tt.want {
				t.Errorf("MatchesFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func seedSearchFixture(t *testing.T, svc *Service) (projectA, projectB string) {
	t.Helper()
	ctx := context.Background()
	a, err := svc.CreateProject(ctx, "alpha", nil, nil)
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	b, err := svc.CreateProject(ctx, "beta", nil, nil)
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	mk := func(project *models.Project, title string, tags []string) TaskView {
		view, err := svc.CreateTask(ctx, CreateTaskInput{
			ProjectID: project.ID,
			Title:     title,
			Tags:      tags,
		})
		if err != nil {
			t.Fatalf("CreateTask(%q) error = %v", title, err)
		}
		return view
	}

	urgent := mk(a, "urgent fix", []string{"Urgent"})
	mk(a, "routine cleanup", nil)
	mk(b, "beta work", []string{"urgent", "beta"})

	// Move one task to Done for the combined-filter case.
	if _, err := svc.UpdateTaskStatus(ctx, urgent.ID, StatusInProgress); err != nil {
		t.Fatalf("UpdateTaskStatus() error = %v", err)
	}
	if _, err := svc.UpdateTaskStatus(ctx, urgent.ID, StatusDone); err != nil {
		t.Fatalf("UpdateTaskStatus() error = %v", err)
	}
	return a.ID.String(), b.ID.String()
}

func TestSearchTasksTagFilterIsCaseInsensitive(t *testing.T) {
	svc := New(newFakeStore())
	seedSearchFixture(t, svc)

	page, err := svc.SearchTasks(context.Background(), SearchParams{Tag: "URGENT"})
	if err != nil {
		t.Fatalf("SearchTasks() error = %v", err)
	}
	if page.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2", page.TotalCount)
	}
	for _, item := range page.Items {
		found := false
		for _, tag := range item.Tags {
			if tag == "urgent" {
				found = true
			}
		}
		if !found {
			t.Errorf("task %s returned without urgent tag: %v", item.Title, item.Tags)
		}
	}
}

func TestSearchTasksCombinedFilters(t *testing.T) {
	svc := New(newFakeStore())
	projectA, _ := seedSearchFixture(t, svc)

	page, err := svc.SearchTasks(context.Background(), SearchParams{
		ProjectID: projectA,
		Status:    StatusDone,
	})
	if err != nil {
		t.Fatalf("SearchTasks() error = %v", err)
	}
	if page.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", page.TotalCount)
	}
	if page.Items[0].Title != "urgent fix" {
		t.Errorf("got %q, want the done task in project alpha", page.Items[0].Title)
	}
}

func TestSearchTasksPaginationAndCount(t *testing.T) {
	store := newFakeStore()
	svc := New(store)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, "bulk", nil, nil)
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	for i := 0; i < 25; i++ {
		if _, err := svc.CreateTask(ctx, CreateTaskInput{
			ProjectID: project.ID,
			Title:     fmt.Sprintf("task %02d", i),
		}); err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	page, err := svc.SearchTasks(ctx, SearchParams{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("SearchTasks() error = %v", err)
	}
	if page.TotalCount != 25 {
		t.Errorf("TotalCount = %d, want 25 regardless of the page window", page.TotalCount)
	}
	if len(page.Items) != 10 {
		t.Errorf("len(Items) = %d, want 10", len(page.Items))
	}
	if page.Page != 2 || page.PageSize != 10 {
		t.Errorf("page echo = %d/%d, want 2/10", page.Page, page.PageSize)
	}

	// Newest first: page 2 of 10 starts at the 11th newest, task 14.
	if page.Items[0].Title != "task 14" {
		t.Errorf("page 2 starts with %q, want %q", page.Items[0].Title, "task 14")
	}

	// Coerced parameters behave as defaults.
	coerced, err := svc.SearchTasks(ctx, SearchParams{Page: 0, PageSize: -5})
	if err != nil {
		t.Fatalf("SearchTasks() error = %v", err)
	}
	if coerced.Page != 1 || coerced.PageSize != 20 || len(coerced.Items) != 20 {
		t.Errorf("coerced page = %d/%d with %d items, want 1/20 with 20",
			coerced.Page, coerced.PageSize, len(coerced.Items))
	}
}

func TestSearchTasksOrderedNewestFirst(t *testing.T) {
	svc := New(newFakeStore())
	ctx := context.Background()
	project, _ := svc.CreateProject(ctx, "order", nil, nil)
	for i := 0; i < 3; i++ {
		svc.CreateTask(ctx, CreateTaskInput{ProjectID: project.ID, Title: fmt.Sprintf("t%d", i)})
		time.Sleep(time.Millisecond)
	}

	page, err := svc.SearchTasks(ctx, SearchParams{})
	if err != nil {
		t.Fatalf("SearchTasks() error = %v", err)
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt) {
			t.Fatalf("items not in descending created_at order at index %d", i)
		}
	}
}

func TestSearchTasksRejectsUnknownEnum(t *testing.T) {
	svc := New(newFakeStore())
	if _, err := svc.SearchTasks(context.Background(), SearchParams{Status: "Shipped"}); err == nil {
		t.Fatal("SearchTasks() with unknown status succeeded, want error")
	}
}
