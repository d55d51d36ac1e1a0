package devserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskdeck/internal/domain"
	"github.com/runoshun/taskdeck/internal/testutil"
)

var testNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestServer() *Server {
	n := 0
	return New(Options{
		Clock: &testutil.MockClock{NowTime: testNow},
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
}

func call(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// =============================================================================
// Tasks
// =============================================================================

func TestServer_TaskLifecycle(t *testing.T) {
	s := newTestServer()

	rec := call(t, s, http.MethodPost, "/api/tasks/", map[string]any{
		"title":          "Write report",
		"description":    "Q1 numbers",
		"priority_score": 50,
		"deadline":       "2024-03-05T17:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Task](t, rec)
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, testNow, created.CreatedAt)
	require.NotNil(t, created.Deadline)
	assert.Equal(t, time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC), *created.Deadline)

	rec = call(t, s, http.MethodPut, "/api/tasks/id-1/", map[string]any{
		"title":          "Write report",
		"priority_score": 80,
		"status":         "in_progress",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Task](t, rec)
	assert.Equal(t, 80, updated.PriorityScore)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Nil(t, updated.Deadline, "omitted deadline clears it")

	rec = call(t, s, http.MethodGet, "/api/tasks/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Task](t, rec), 1)

	rec = call(t, s, http.MethodDelete, "/api/tasks/id-1/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = call(t, s, http.MethodDelete, "/api/tasks/id-1/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CreateTask_Validation(t *testing.T) {
	tests := []struct {
		body  map[string]any
		name  string
		field string
	}{
		{name: "missing title", body: map[string]any{"description": "x"}, field: "title"},
		{name: "blank title", body: map[string]any{"title": "  "}, field: "title"},
		{name: "invalid status", body: map[string]any{"title": "a", "status": "archived"}, field: "status"},
		{name: "unknown category", body: map[string]any{"title": "a", "category": "nope"}, field: "category"},
		{name: "bad deadline", body: map[string]any{"title": "a", "deadline": "tomorrow"}, field: "deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()

			rec := call(t, s, http.MethodPost, "/api/tasks/", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			errs := decode[map[string][]string](t, rec)
			assert.Contains(t, errs, tt.field)
			assert.Empty(t, s.tasks)
		})
	}
}

func TestServer_UpdateTask_NotFound(t *testing.T) {
	s := newTestServer()

	rec := call(t, s, http.MethodPut, "/api/tasks/missing/", map[string]any{"title": "a"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, rec.Body.String())
}

func TestServer_UpdateTask_FailureKeepsRecord(t *testing.T) {
	s := newTestServer()
	s.Seed([]domain.Task{{ID: "t1", Title: "Keep", Status: domain.StatusDone}}, nil, nil)

	rec := call(t, s, http.MethodPut, "/api/tasks/t1/", map[string]any{"title": ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Keep", s.tasks[0].Title)
}

// =============================================================================
// Categories
// =============================================================================

func TestServer_CategoryUniqueName(t *testing.T) {
	s := newTestServer()

	rec := call(t, s, http.MethodPost, "/api/categories/", map[string]any{"name": "Work"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(t, s, http.MethodPost, "/api/categories/", map[string]any{"name": "Work"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"category with this name already exists."}, decode[map[string][]string](t, rec)["name"])

	// Renaming to its own name is allowed.
	rec = call(t, s, http.MethodPut, "/api/categories/id-1/", map[string]any{"name": "Work"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_DeleteCategory_UnsetsTaskCategory(t *testing.T) {
	s := newTestServer()
	work := "c1"
	home := "c2"
	s.Seed(
		[]domain.Task{
			{ID: "t1", Title: "A", CategoryID: &work},
			{ID: "t2", Title: "B", CategoryID: &home},
		},
		[]domain.Category{{ID: "c1", Name: "Work"}, {ID: "c2", Name: "Home"}},
		nil,
	)

	rec := call(t, s, http.MethodDelete, "/api/categories/c1/", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	tasks := decode[[]domain.Task](t, call(t, s, http.MethodGet, "/api/tasks/", nil))
	require.Len(t, tasks, 2)
	assert.Nil(t, tasks[0].CategoryID)
	require.NotNil(t, tasks[1].CategoryID)
	assert.Equal(t, "c2", *tasks[1].CategoryID)
}

// =============================================================================
// Context entries
// =============================================================================

func TestServer_CreateContext(t *testing.T) {
	s := newTestServer()

	rec := call(t, s, http.MethodPost, "/api/context/", map[string]any{
		"content":     "Standup moved to 10am",
		"source_type": "whatsapp",
		"timestamp":   "2024-01-02T10:00",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	entry := decode[domain.ContextEntry](t, rec)
	assert.Equal(t, domain.SourceWhatsApp, entry.SourceType)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), entry.Timestamp)
}

func TestServer_ListContext_NewestFirst(t *testing.T) {
	s := newTestServer()
	for _, ts := range []string{"2024-01-01T10:00", "2024-01-03T10:00", "2024-01-02T10:00"} {
		rec := call(t, s, http.MethodPost, "/api/context/", map[string]any{
			"content":     "note at " + ts,
			"source_type": "note",
			"timestamp":   ts,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := call(t, s, http.MethodGet, "/api/context/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]domain.ContextEntry](t, rec)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"id-2", "id-3", "id-1"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
}

func TestServer_CreateContext_Validation(t *testing.T) {
	s := newTestServer()

	rec := call(t, s, http.MethodPost, "/api/context/", map[string]any{
		"content":     "",
		"source_type": "fax",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode[map[string][]string](t, rec)
	assert.Contains(t, errs, "content")
	assert.Contains(t, errs, "source_type")
	assert.Contains(t, errs, "timestamp")
}

// =============================================================================
// Assistant
// =============================================================================

func TestServer_Suggest(t *testing.T) {
	s := newTestServer()

	rec := call(t, s, http.MethodPost, "/api/tasks/suggestions/", map[string]any{
		"task_details":    map[string]any{"title": "Plan trip", "description": "Book flights"},
		"context_entries": []any{map[string]any{"content": "Holiday in May"}},
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[domain.Suggestion](t, rec)
	assert.Equal(t, 75, got.Prioritization)
	assert.Equal(t, "Book flights (AI enhanced)", got.EnhancedDescription)
	assert.Equal(t, []string{"Work", "Urgent"}, got.CategoryRecommendations)
	require.NotNil(t, got.DeadlineRecommendation)
	assert.Equal(t, suggestedDeadline, *got.DeadlineRecommendation)
}

func TestServer_Suggest_RequiresContext(t *testing.T) {
	s := newTestServer()

	rec := call(t, s, http.MethodPost, "/api/tasks/suggestions/", map[string]any{
		"task_details":    map[string]any{"title": "Plan trip"},
		"context_entries": []any{},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"task_details and context_entries are required."}`, rec.Body.String())
}

func TestServer_Chat(t *testing.T) {
	s := newTestServer()

	rec := call(t, s, http.MethodPost, "/api/ai-chat/", domain.ChatRequest{
		Message: "What next?",
		Tasks: []domain.Task{
			{ID: "1", Title: "Low", PriorityScore: 10, Status: domain.StatusPending},
			{ID: "2", Title: "High", PriorityScore: 90, Status: domain.StatusInProgress},
			{ID: "3", Title: "Finished", PriorityScore: 99, Status: domain.StatusDone},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	reply := decode[domain.ChatReply](t, rec)
	assert.Contains(t, reply.Response, "**2** open task(s)")
	assert.Contains(t, reply.Response, "Start with **High**")
	assert.NotContains(t, reply.Response, "Finished")
}

func TestServer_Chat_RequiresMessage(t *testing.T) {
	s := newTestServer()

	rec := call(t, s, http.MethodPost, "/api/ai-chat/", map[string]any{"message": ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Message is required."}`, rec.Body.String())
}

func TestChatReply_NoOpenTasks(t *testing.T) {
	assert.Equal(t, "You have no open tasks. Enjoy the break!", chatReply(nil))
}
