package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kutbudev/taskpilot/pkg/services"
)

// Handler exposes the task lifecycle over HTTP.
type Handler struct {
	svc *services.Service
}

// New returns a Handler backed by the given service.
func New(svc *services.Service) *Handler {
	return &Handler{svc: svc}
}

// CreateTaskInput DTO for creating a new task. A supplied status is ignored:
// new tasks always start as Todo.
type CreateTaskInput struct {
	ProjectID   string     `json:"project_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
}

// CreateTask creates a new task under an existing project.
func (h *Handler) CreateTask(c *gin.Context) {
	var input CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	projectID, err := uuid.Parse(input.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	view, err := h.svc.CreateTask(c.Request.Context(), services.CreateTaskInput{
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Tags:        input.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetTask retrieves a single task by its ID.
func (h *Handler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.svc.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateTaskInput DTO for updating a task's fields. Status and tags have
// their own endpoints.
type UpdateTaskInput struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority" binding:"required"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTask overwrites a task's title, description, priority and due date.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.svc.UpdateTask(c.Request.Context(), id, services.UpdateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetTaskStatusInput DTO for updating a task's status
type SetTaskStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// SetTaskStatus moves a task through the status state machine.
func (h *Handler) SetTaskStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input SetTaskStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.svc.UpdateTaskStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ReplaceTagsInput DTO for replacing a task's tag set. An empty list clears
// all tags.
type ReplaceTagsInput struct {
	Tags []string `json:"tags"`
}

// ReplaceTags swaps a task's tag set wholesale.
func (h *Handler) ReplaceTags(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ReplaceTagsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.svc.ReplaceTaskTags(c.Request.Context(), id, input.Tags)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateCommentInput DTO for adding a comment
type CreateCommentInput struct {
	Text string `json:"text" binding:"required"`
}

// CreateComment adds a new comment to a task.
func (h *Handler) CreateComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.svc.AddComment(c.Request.Context(), id, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// ListComments retrieves a task's comments, oldest first.
func (h *Handler) ListComments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	views, err := h.svc.ListComments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// SearchTasks retrieves a filtered, paginated page of tasks.
func (h *Handler) SearchTasks(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	result, err := h.svc.SearchTasks(c.Request.Context(), services.SearchParams{
		ProjectID: c.Query("project_id"),
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Tag:       c.Query("tag"),
		Search:    c.Query("search"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return uuid.Nil, false
	}
	return id, true
}
