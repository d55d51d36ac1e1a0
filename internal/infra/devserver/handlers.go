package devserver

import (
	"cmp"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/taskdeck/internal/domain"
)

// Placeholder assistant answers.
const (
	suggestedPriority = 75
	enhancedSuffix    = " (AI enhanced)"
)

var (
	suggestedDeadline   = time.Date(2025, 7, 10, 17, 0, 0, 0, time.UTC)
	suggestedCategories = []string{"Work", "Urgent"}
)

// =============================================================================
// Tasks
// =============================================================================

type taskBody struct {
	Title         *string        `json:"title"`
	Description   *string        `json:"description"`
	Category      *string        `json:"category"`
	Deadline      *string        `json:"deadline"`
	Status        *domain.Status `json:"status"`
	PriorityScore *int           `json:"priority_score"`
}

func (s *Server) listTasks(c *gin.Context) {
	s.mu.Lock()
	tasks := slices.Clone(s.tasks)
	s.mu.Unlock()
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) getTask(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.tasks, c.Param("id"))
	if i < 0 {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, s.tasks[i])
}

func (s *Server) createTask(c *gin.Context) {
	var body taskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := domain.Task{Status: domain.StatusPending}
	if fe := s.applyTask(&task, body); len(fe) > 0 {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	now := s.now()
	task.ID = s.newID()
	task.CreatedAt = now
	task.UpdatedAt = now
	s.tasks = append(s.tasks, task)
	c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c *gin.Context) {
	var body taskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks, c.Param("id"))
	if i < 0 {
		notFound(c)
		return
	}
	task := s.tasks[i]
	if fe := s.applyTask(&task, body); len(fe) > 0 {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	task.UpdatedAt = s.now()
	s.tasks[i] = task
	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks, c.Param("id"))
	if i < 0 {
		notFound(c)
		return
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	c.Status(http.StatusNoContent)
}

// applyTask writes body onto task. Caller must hold s.mu.
func (s *Server) applyTask(task *domain.Task, body taskBody) fieldErrors {
	fe := fieldErrors{}

	switch {
	case body.Title == nil:
		fe.add("title", "This field is required.")
	case strings.TrimSpace(*body.Title) == "":
		fe.add("title", "This field may not be blank.")
	default:
		task.Title = *body.Title
	}

	if body.Description != nil {
		task.Description = *body.Description
	}

	task.CategoryID = nil
	if body.Category != nil && *body.Category != "" {
		id := *body.Category
		if indexOf(s.categories, id) < 0 {
			fe.add("category", fmt.Sprintf("Invalid pk %q - object does not exist.", id))
		} else {
			task.CategoryID = &id
		}
	}

	if body.PriorityScore != nil {
		task.PriorityScore = *body.PriorityScore
	}

	task.Deadline = nil
	if body.Deadline != nil && *body.Deadline != "" {
		d, err := domain.ParseTimestamp(*body.Deadline, time.UTC)
		if err != nil {
			fe.add("deadline", "Datetime has wrong format.")
		} else {
			d = d.UTC()
			task.Deadline = &d
		}
	}

	if body.Status != nil {
		if body.Status.IsValid() {
			task.Status = *body.Status
		} else {
			fe.add("status", fmt.Sprintf("%q is not a valid choice.", string(*body.Status)))
		}
	}

	return fe
}

// =============================================================================
// Categories
// =============================================================================

type categoryBody struct {
	Name *string `json:"name"`
}

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	categories := slices.Clone(s.categories)
	s.mu.Unlock()
	c.JSON(http.StatusOK, categories)
}

func (s *Server) createCategory(c *gin.Context) {
	var body categoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category := domain.Category{}
	if fe := s.applyCategory(&category, body); len(fe) > 0 {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	category.ID = s.newID()
	s.categories = append(s.categories, category)
	c.JSON(http.StatusCreated, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	var body categoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.categories, c.Param("id"))
	if i < 0 {
		notFound(c)
		return
	}
	category := s.categories[i]
	if fe := s.applyCategory(&category, body); len(fe) > 0 {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	s.categories[i] = category
	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	i := indexOf(s.categories, id)
	if i < 0 {
		notFound(c)
		return
	}
	s.categories = slices.Delete(s.categories, i, i+1)

	// Tasks keep existing without a category.
	now := s.now()
	for j := range s.tasks {
		if ref := s.tasks[j].CategoryID; ref != nil && *ref == id {
			s.tasks[j].CategoryID = nil
			s.tasks[j].UpdatedAt = now
		}
	}
	c.Status(http.StatusNoContent)
}

// applyCategory writes body onto category. Caller must hold s.mu.
func (s *Server) applyCategory(category *domain.Category, body categoryBody) fieldErrors {
	fe := fieldErrors{}
	switch {
	case body.Name == nil:
		fe.add("name", "This field is required.")
	case strings.TrimSpace(*body.Name) == "":
		fe.add("name", "This field may not be blank.")
	default:
		for _, other := range s.categories {
			if other.Name == *body.Name && other.ID != category.ID {
				fe.add("name", "category with this name already exists.")
				return fe
			}
		}
		category.Name = *body.Name
	}
	return fe
}

// =============================================================================
// Context entries
// =============================================================================

type contextBody struct {
	Content           *string            `json:"content"`
	SourceType        *domain.SourceType `json:"source_type"`
	Timestamp         *string            `json:"timestamp"`
	ProcessedInsights json.RawMessage    `json:"processed_insights"`
}

func (s *Server) listContext(c *gin.Context) {
	s.mu.Lock()
	entries := slices.Clone(s.entries)
	s.mu.Unlock()
	domain.SortContextEntries(entries)
	c.JSON(http.StatusOK, entries)
}

func (s *Server) createContext(c *gin.Context) {
	var body contextBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.ContextEntry{}
	if fe := applyContext(&entry, body); len(fe) > 0 {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	entry.ID = s.newID()
	s.entries = append(s.entries, entry)
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) updateContext(c *gin.Context) {
	var body contextBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.entries, c.Param("id"))
	if i < 0 {
		notFound(c)
		return
	}
	entry := s.entries[i]
	if fe := applyContext(&entry, body); len(fe) > 0 {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	s.entries[i] = entry
	c.JSON(http.StatusOK, entry)
}

func (s *Server) deleteContext(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.entries, c.Param("id"))
	if i < 0 {
		notFound(c)
		return
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	c.Status(http.StatusNoContent)
}

func applyContext(entry *domain.ContextEntry, body contextBody) fieldErrors {
	fe := fieldErrors{}

	switch {
	case body.Content == nil:
		fe.add("content", "This field is required.")
	case strings.TrimSpace(*body.Content) == "":
		fe.add("content", "This field may not be blank.")
	default:
		entry.Content = *body.Content
	}

	switch {
	case body.SourceType == nil:
		fe.add("source_type", "This field is required.")
	case !body.SourceType.IsValid():
		fe.add("source_type", fmt.Sprintf("%q is not a valid choice.", string(*body.SourceType)))
	default:
		entry.SourceType = *body.SourceType
	}

	if body.Timestamp == nil || *body.Timestamp == "" {
		fe.add("timestamp", "This field is required.")
	} else if ts, err := domain.ParseTimestamp(*body.Timestamp, time.UTC); err != nil {
		fe.add("timestamp", "Datetime has wrong format.")
	} else {
		entry.Timestamp = ts.UTC()
	}

	if len(body.ProcessedInsights) > 0 && string(body.ProcessedInsights) != "null" {
		entry.ProcessedInsights = body.ProcessedInsights
	}
	return fe
}

// =============================================================================
// Assistant
// =============================================================================

type suggestBody struct {
	TaskDetails    map[string]any `json:"task_details"`
	ContextEntries []any          `json:"context_entries"`
}

func (s *Server) suggest(c *gin.Context) {
	var body suggestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badJSON(c, err)
		return
	}
	if len(body.TaskDetails) == 0 || len(body.ContextEntries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_details and context_entries are required."})
		return
	}

	description, _ := body.TaskDetails["description"].(string)
	deadline := suggestedDeadline
	c.JSON(http.StatusOK, domain.Suggestion{
		Prioritization:          suggestedPriority,
		DeadlineRecommendation:  &deadline,
		EnhancedDescription:     description + enhancedSuffix,
		CategoryRecommendations: slices.Clone(suggestedCategories),
	})
}

func (s *Server) chat(c *gin.Context) {
	var body domain.ChatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badJSON(c, err)
		return
	}
	if body.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required."})
		return
	}
	c.JSON(http.StatusOK, domain.ChatReply{Response: chatReply(body.Tasks)})
}

// chatReply builds a short Markdown overview of the open tasks,
// highest priority first.
func chatReply(tasks []domain.Task) string {
	open := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != domain.StatusDone {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return "You have no open tasks. Enjoy the break!"
	}
	slices.SortStableFunc(open, func(a, b domain.Task) int {
		return cmp.Compare(b.PriorityScore, a.PriorityScore)
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have **%d** open task(s). Start with **%s**", len(open), open[0].Title)
	if d := open[0].Deadline; d != nil {
		fmt.Fprintf(&sb, ", due %s", d.Format("2006-01-02 15:04"))
	}
	sb.WriteString(".\n")
	for _, t := range open[:min(3, len(open))] {
		fmt.Fprintf(&sb, "\n- %s (priority %d, %s)", t.Title, t.PriorityScore, t.Status.Display())
	}
	sb.WriteString("\n")
	return sb.String()
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) now() time.Time {
	return s.clock.Now().UTC()
}

func indexOf[T domain.Entity](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool {
		return item.EntityID() == id
	})
}
