package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// recordedRequest is one request seen by a stub backend.
type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

// stubBackend answers every request with a fixed status and body and
// records what it received.
type stubBackend struct {
	body     string
	requests []recordedRequest
	mu       sync.Mutex
	status   int
}

func (b *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(data)})
	b.mu.Unlock()

	if b.body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(b.status)
	_, _ = io.WriteString(w, b.body)
}

func (b *stubBackend) last(t *testing.T) recordedRequest {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.requests)
	return b.requests[len(b.requests)-1]
}

func newStub(t *testing.T, status int, body string) (*stubBackend, *Client) {
	t.Helper()
	stub := &stubBackend{status: status, body: body}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return stub, New(srv.URL+"/api/", Options{})
}

func TestClient_Paths(t *testing.T) {
	tests := []struct {
		call   func(ctx context.Context, c *Client) error
		name   string
		method string
		path   string
	}{
		{
			name: "list tasks", method: http.MethodGet, path: "/api/tasks/",
			call: func(ctx context.Context, c *Client) error { _, err := c.Tasks().List(ctx); return err },
		},
		{
			name: "create task", method: http.MethodPost, path: "/api/tasks/",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Tasks().Create(ctx, domain.TaskInput{Title: "a"})
				return err
			},
		},
		{
			name: "update task", method: http.MethodPut, path: "/api/tasks/t-1/",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Tasks().Update(ctx, "t-1", domain.TaskInput{Title: "a"})
				return err
			},
		},
		{
			name: "delete task", method: http.MethodDelete, path: "/api/tasks/t-1/",
			call: func(ctx context.Context, c *Client) error { return c.Tasks().Delete(ctx, "t-1") },
		},
		{
			name: "list categories", method: http.MethodGet, path: "/api/categories/",
			call: func(ctx context.Context, c *Client) error { _, err := c.Categories().List(ctx); return err },
		},
		{
			name: "update category", method: http.MethodPut, path: "/api/categories/c-1/",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Categories().Update(ctx, "c-1", domain.CategoryInput{Name: "n"})
				return err
			},
		},
		{
			name: "create context", method: http.MethodPost, path: "/api/context/",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Context().Create(ctx, domain.ContextInput{Content: "c", SourceType: domain.SourceNote})
				return err
			},
		},
		{
			name: "suggestions", method: http.MethodPost, path: "/api/tasks/suggestions/",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Suggest(ctx, domain.SuggestionRequest{})
				return err
			},
		},
		{
			name: "chat", method: http.MethodPost, path: "/api/ai-chat/",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Chat(ctx, domain.ChatRequest{Message: "hi"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub, client := newStub(t, http.StatusNoContent, "")

			require.NoError(t, tt.call(context.Background(), client))

			got := stub.last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
		})
	}
}

func TestClient_NonSuccessStatus(t *testing.T) {
	stub, client := newStub(t, http.StatusBadRequest, `{"title":["This field may not be blank."]}`)

	_, err := client.Tasks().Create(context.Background(), domain.TaskInput{Title: " "})

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadRequest, re.Status)
	assert.Equal(t, http.MethodPost, re.Method)
	assert.Equal(t, "tasks/", re.Path)
	assert.JSONEq(t, `{"title":["This field may not be blank."]}`, string(re.Body))
	assert.Len(t, stub.requests, 1, "no retry")
}

func TestClient_DeleteNotFound(t *testing.T) {
	_, client := newStub(t, http.StatusNotFound, `{"detail":"Not found."}`)

	err := client.Categories().Delete(context.Background(), "gone")

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.True(t, re.NotFound())
}

func TestClient_DeleteAcceptsOKWithBody(t *testing.T) {
	_, client := newStub(t, http.StatusOK, `{"deleted":true}`)

	err := client.Tasks().Delete(context.Background(), "t-1")

	assert.NoError(t, err)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client := New(url+"/api", Options{Timeout: time.Second})

	_, err := client.Tasks().List(context.Background())

	require.Error(t, err)
	var re *domain.RemoteError
	assert.False(t, errors.As(err, &re))
}

func TestClient_InvalidJSON(t *testing.T) {
	_, client := newStub(t, http.StatusOK, `[{"id":`)

	_, err := client.Tasks().List(context.Background())

	assert.ErrorContains(t, err, "decode response")
}

func TestClient_DecodesNumericIDs(t *testing.T) {
	_, client := newStub(t, http.StatusOK, `[
		{"id": 7, "title": "Numeric", "category": 3, "priority_score": 10, "status": "pending", "deadline": null},
		{"id": "b1c2", "title": "String", "category": null, "priority_score": 0, "status": "done"}
	]`)

	tasks, err := client.Tasks().List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "7", tasks[0].ID)
	require.NotNil(t, tasks[0].CategoryID)
	assert.Equal(t, "3", *tasks[0].CategoryID)
	assert.Equal(t, "Numeric", tasks[0].Title)

	assert.Equal(t, "b1c2", tasks[1].ID)
	assert.Nil(t, tasks[1].CategoryID)
	assert.Equal(t, domain.StatusDone, tasks[1].Status)
}

func TestClient_SendsTaskBody(t *testing.T) {
	stub, client := newStub(t, http.StatusCreated, `{"id":"t-9","title":"Report","status":"pending","priority_score":50}`)
	cat := "c-1"
	deadline := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	task, err := client.Tasks().Create(context.Background(), domain.TaskInput{
		Title:         "Report",
		CategoryID:    &cat,
		Deadline:      &deadline,
		PriorityScore: 50,
		Status:        domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "t-9", task.ID)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(stub.last(t).Body), &sent))
	assert.Equal(t, "Report", sent["title"])
	assert.Equal(t, "c-1", sent["category"])
	assert.Equal(t, "2024-05-01T12:00:00Z", sent["deadline"])
	assert.EqualValues(t, 50, sent["priority_score"])
	assert.Equal(t, "pending", sent["status"])
	assert.NotContains(t, sent, "id")
}

func TestClient_DecodesTimeForms(t *testing.T) {
	tests := []struct {
		want     *time.Time
		name     string
		deadline string
	}{
		{name: "rfc3339", deadline: `"2024-05-01T12:00:00Z"`, want: ptrTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))},
		{name: "offset", deadline: `"2024-05-01T14:00:00+02:00"`, want: ptrTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))},
		{name: "zone-less seconds", deadline: `"2024-05-01T12:00:00"`, want: ptrTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local))},
		{name: "zone-less microseconds", deadline: `"2024-05-01T12:00:00.250000"`, want: ptrTime(time.Date(2024, 5, 1, 12, 0, 0, 250_000_000, time.Local))},
		{name: "zone-less minutes", deadline: `"2024-05-01T12:00"`, want: ptrTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local))},
		{name: "null", deadline: `null`},
		{name: "empty", deadline: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newStub(t, http.StatusOK, `[{"id": 1, "title": "a", "status": "pending", "deadline": `+tt.deadline+
				`, "created_at": "2024-04-30T08:00:00", "updated_at": "2024-04-30T09:00:00Z"}]`)

			tasks, err := client.Tasks().List(context.Background())
			require.NoError(t, err)
			require.Len(t, tasks, 1)

			if tt.want == nil {
				assert.Nil(t, tasks[0].Deadline)
			} else {
				require.NotNil(t, tasks[0].Deadline)
				assert.True(t, tt.want.Equal(*tasks[0].Deadline), "got %v", *tasks[0].Deadline)
			}
			assert.True(t, time.Date(2024, 4, 30, 8, 0, 0, 0, time.Local).Equal(tasks[0].CreatedAt))
			assert.True(t, time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC).Equal(tasks[0].UpdatedAt))
		})
	}
}

func TestClient_InvalidTime(t *testing.T) {
	_, client := newStub(t, http.StatusOK, `[{"id": 1, "title": "a", "status": "pending", "deadline": "next week"}]`)

	_, err := client.Tasks().List(context.Background())

	assert.ErrorContains(t, err, "invalid time")
}

func TestClient_ContextLoadsNewestFirst(t *testing.T) {
	_, client := newStub(t, http.StatusOK, `[
		{"id": 1, "content": "older", "source_type": "note", "timestamp": "2024-01-01T10:00"},
		{"id": 2, "content": "newer", "source_type": "email", "timestamp": "2024-01-02T10:00"}
	]`)
	entries := collection.NewContextEntries(client.Context(), nil)

	loaded, err := entries.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, loaded, 2)
	assert.Equal(t, "2", loaded[0].ID)
	assert.Equal(t, "1", loaded[1].ID)
	assert.True(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local).Equal(loaded[1].Timestamp))
}

func TestClient_SuggestDecodesZoneLessDeadline(t *testing.T) {
	_, client := newStub(t, http.StatusOK, `{
		"prioritization": 80,
		"deadline_recommendation": "2024-06-01T18:00:00",
		"enhanced_description": "Plan the trip",
		"category_recommendations": ["Travel"]
	}`)

	s, err := client.Suggest(context.Background(), domain.SuggestionRequest{
		TaskDetails: domain.SuggestionTarget{Title: "Trip"},
	})
	require.NoError(t, err)

	assert.Equal(t, 80, s.Prioritization)
	assert.Equal(t, []string{"Travel"}, s.CategoryRecommendations)
	require.NotNil(t, s.DeadlineRecommendation)
	assert.True(t, time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local).Equal(*s.DeadlineRecommendation))
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestClient_ChatSendsEmptyArrays(t *testing.T) {
	stub, client := newStub(t, http.StatusOK, `{"response":"hello"}`)

	reply, err := client.Chat(context.Background(), domain.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)

	assert.JSONEq(t, `{"message":"hi","tasks":[],"chat_history":[]}`, stub.last(t).Body)
}

func TestClient_RateLimit(t *testing.T) {
	stub := &stubBackend{status: http.StatusOK, body: `[]`}
	srv := httptest.NewServer(stub)
	defer srv.Close()
	client := New(srv.URL+"/api", Options{RateLimit: 20, Burst: 1})

	start := time.Now()
	for range 3 {
		_, err := client.Categories().List(context.Background())
		require.NoError(t, err)
	}

	// Two waits of 50ms after the initial burst token.
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	_, client := newStub(t, http.StatusOK, `[]`)
	limited := New(client.BaseURL(), Options{RateLimit: 0.001, Burst: 1})

	_, err := limited.Tasks().List(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = limited.Tasks().List(ctx)
	assert.Error(t, err)
}
