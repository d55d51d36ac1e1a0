// Package devserver provides an in-memory implementation of the task
// backend's REST API for local development and integration tests.
//
// It follows the production backend's observable behaviour: UUID ids,
// trailing-slash routes, 400 answers with per-field messages, 404 for
// unknown ids, 204 on delete, and tasks losing their category when the
// category is deleted. The assistant endpoints answer with deterministic
// placeholder content.
package devserver

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/runoshun/taskdeck/internal/domain"
)

// Options configures a Server.
// Fields are ordered to minimize memory padding.
type Options struct {
	Clock  domain.Clock  // Source of created_at/updated_at (nil = system clock)
	Logger domain.Logger // Request log (nil = discard)
	NewID  func() string // ID generator (nil = random UUIDs)
}

// Server is the in-memory backend.
// Fields are ordered to minimize memory padding.
type Server struct {
	router     *gin.Engine
	clock      domain.Clock
	logger     domain.Logger
	newID      func() string
	tasks      []domain.Task
	categories []domain.Category
	entries    []domain.ContextEntry
	mu         sync.Mutex
}

// New creates a Server with empty collections.
func New(opts Options) *Server {
	s := &Server{
		clock:  opts.Clock,
		logger: opts.Logger,
		newID:  opts.NewID,
	}
	if s.clock == nil {
		s.clock = domain.RealClock{}
	}
	if s.logger == nil {
		s.logger = domain.NopLogger{}
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.NewString() }
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests())

	api := router.Group("/api")
	{
		api.GET("/tasks/", s.listTasks)
		api.POST("/tasks/", s.createTask)
		api.GET("/tasks/:id/", s.getTask)
		api.PUT("/tasks/:id/", s.updateTask)
		api.DELETE("/tasks/:id/", s.deleteTask)
		api.POST("/tasks/suggestions/", s.suggest)

		api.GET("/categories/", s.listCategories)
		api.POST("/categories/", s.createCategory)
		api.PUT("/categories/:id/", s.updateCategory)
		api.DELETE("/categories/:id/", s.deleteCategory)

		api.GET("/context/", s.listContext)
		api.POST("/context/", s.createContext)
		api.PUT("/context/:id/", s.updateContext)
		api.DELETE("/context/:id/", s.deleteContext)

		api.POST("/ai-chat/", s.chat)
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler serving the API under /api.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("", "devserver", fmt.Sprintf("listening on %s", addr))
	return s.router.Run(addr)
}

// Seed adds entities as if they had been created earlier.
func (s *Server) Seed(tasks []domain.Task, categories []domain.Category, entries []domain.ContextEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, tasks...)
	s.categories = append(s.categories, categories...)
	s.entries = append(s.entries, entries...)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("", "devserver", fmt.Sprintf("%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond)))
	}
}

// fieldErrors collects per-field validation messages, answered as
// {"field": ["message", ...]}.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("JSON parse error - %v", err)})
}
