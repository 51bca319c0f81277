package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kutbudev/taskpilot/api/handlers"
	"github.com/kutbudev/taskpilot/pkg/services"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Health() error
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svc *services.Service, health HealthChecker) *gin.Engine {
	r := gin.Default()
	h := handlers.New(svc)

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		if err := health.Health(); err != nil {
			c.JSON(503, gin.H{"message": "database unreachable"})
			return
		}
		c.JSON(200, gin.H{"message": "pong"})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.GET("/tasks", h.SearchTasks)
		v1.POST("/tasks", h.CreateTask)
		v1.GET("/tasks/:id", h.GetTask)
		v1.PUT("/tasks/:id", h.UpdateTask)
		v1.PUT("/tasks/:id/status", h.SetTaskStatus)
		v1.PUT("/tasks/:id/tags", h.ReplaceTags)
		v1.POST("/tasks/:id/comments", h.CreateComment)
		v1.GET("/tasks/:id/comments", h.ListComments)

		// Project routes
		v1.POST("/projects", h.CreateProject)
		v1.GET("/projects", h.ListProjects)
		v1.GET("/projects/:id", h.GetProject)
	}

	return r
}
