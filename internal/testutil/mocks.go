// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/taskdeck/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockRemote is an in-memory test double for domain.Remote.
// It behaves like the backend: it assigns IDs on create, keeps insertion
// order, and rejects unknown IDs. Set the *Err fields to make a verb fail.
// Fields are ordered to minimize memory padding.
type MockRemote[T domain.Entity, I any] struct {
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Build turns an input into a stored entity with the given ID.
	Build func(id string, in I) T

	// Items is the confirmed remote state, in server order.
	Items []T

	// Calls counts invocations per verb ("list", "create", "update", "delete").
	Calls map[string]int

	prefix string
	mu     sync.Mutex
	nextID int
}

// NewMockRemote creates a MockRemote that assigns IDs "<prefix>-1", "<prefix>-2", ...
func NewMockRemote[T domain.Entity, I any](prefix string, build func(id string, in I) T) *MockRemote[T, I] {
	return &MockRemote[T, I]{
		Build:  build,
		Calls:  make(map[string]int),
		prefix: prefix,
		nextID: 1,
	}
}

// List returns a copy of the stored items.
func (m *MockRemote[T, I]) List(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["list"]++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.Items), nil
}

// Create stores a new item and returns it.
func (m *MockRemote[T, I]) Create(_ context.Context, in I) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["create"]++
	var zero T
	if m.CreateErr != nil {
		return zero, m.CreateErr
	}
	id := fmt.Sprintf("%s-%d", m.prefix, m.nextID)
	m.nextID++
	item := m.Build(id, in)
	m.Items = append(m.Items, item)
	return item, nil
}

// Update replaces a stored item.
func (m *MockRemote[T, I]) Update(_ context.Context, id string, in I) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["update"]++
	var zero T
	if m.UpdateErr != nil {
		return zero, m.UpdateErr
	}
	i := m.index(id)
	if i < 0 {
		return zero, &domain.RemoteError{Method: "PUT", Path: id, Status: 404}
	}
	m.Items[i] = m.Build(id, in)
	return m.Items[i], nil
}

// Delete removes a stored item.
func (m *MockRemote[T, I]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["delete"]++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	i := m.index(id)
	if i < 0 {
		return &domain.RemoteError{Method: "DELETE", Path: id, Status: 404}
	}
	m.Items = slices.Delete(m.Items, i, i+1)
	return nil
}

// Seed appends items to the remote state as if they had been created earlier.
func (m *MockRemote[T, I]) Seed(items ...T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Items = append(m.Items, items...)
}

// CallCount returns the number of calls made to verb.
func (m *MockRemote[T, I]) CallCount(verb string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[verb]
}

func (m *MockRemote[T, I]) index(id string) int {
	return slices.IndexFunc(m.Items, func(item T) bool {
		return item.EntityID() == id
	})
}

// BuildTask builds a stored task from an input.
func BuildTask(id string, in domain.TaskInput) domain.Task {
	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	return domain.Task{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		PriorityScore: in.PriorityScore,
		Deadline:      in.Deadline,
		Status:        status,
	}
}

// BuildCategory builds a stored category from an input.
func BuildCategory(id string, in domain.CategoryInput) domain.Category {
	return domain.Category{ID: id, Name: in.Name}
}

// BuildContextEntry builds a stored context entry from an input.
func BuildContextEntry(id string, in domain.ContextInput) domain.ContextEntry {
	return domain.ContextEntry{
		ID:         id,
		Content:    in.Content,
		SourceType: in.SourceType,
		Timestamp:  in.Timestamp,
	}
}

// NewMockTaskRemote creates a MockRemote for tasks.
func NewMockTaskRemote() *MockRemote[domain.Task, domain.TaskInput] {
	return NewMockRemote("task", BuildTask)
}

// NewMockCategoryRemote creates a MockRemote for categories.
func NewMockCategoryRemote() *MockRemote[domain.Category, domain.CategoryInput] {
	return NewMockRemote("cat", BuildCategory)
}

// NewMockContextRemote creates a MockRemote for context entries.
func NewMockContextRemote() *MockRemote[domain.ContextEntry, domain.ContextInput] {
	return NewMockRemote("ctx", BuildContextEntry)
}

// MockAssistant is a test double for domain.Assistant.
// Fields are ordered to minimize memory padding.
type MockAssistant struct {
	Suggestion  *domain.Suggestion
	SuggestErr  error
	ChatErr     error
	LastSuggest *domain.SuggestionRequest
	LastChat    *domain.ChatRequest
	Reply       string
}

// Suggest records the request and returns the configured suggestion.
func (m *MockAssistant) Suggest(_ context.Context, req domain.SuggestionRequest) (*domain.Suggestion, error) {
	m.LastSuggest = &req
	if m.SuggestErr != nil {
		return nil, m.SuggestErr
	}
	return m.Suggestion, nil
}

// Chat records the request and returns the configured reply.
func (m *MockAssistant) Chat(_ context.Context, req domain.ChatRequest) (string, error) {
	m.LastChat = &req
	if m.ChatErr != nil {
		return "", m.ChatErr
	}
	return m.Reply, nil
}

// LogEntry is one entry captured by MockLogger.
type LogEntry struct {
	Level    string
	Kind     domain.EntityKind
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, kind domain.EntityKind, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Kind: kind, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(kind domain.EntityKind, category, msg string) {
	m.add("INFO", kind, category, msg)
}

// Debug records a debug entry.
func (m *MockLogger) Debug(kind domain.EntityKind, category, msg string) {
	m.add("DEBUG", kind, category, msg)
}

// Warn records a warning entry.
func (m *MockLogger) Warn(kind domain.EntityKind, category, msg string) {
	m.add("WARN", kind, category, msg)
}

// Error records an error entry.
func (m *MockLogger) Error(kind domain.EntityKind, category, msg string) {
	m.add("ERROR", kind, category, msg)
}

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitGlobalErr error
	InitLocalErr  error
	InitGlobalCfg *domain.Config
	InitLocalCfg  *domain.Config
	Global        domain.ConfigInfo
	Local         domain.ConfigInfo
}

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.Global
}

// GetLocalConfigInfo returns the configured local info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.Local
}

// InitGlobalConfig records cfg and returns InitGlobalErr.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	if m.InitGlobalErr != nil {
		return m.InitGlobalErr
	}
	m.InitGlobalCfg = cfg
	m.Global.Exists = true
	return nil
}

// InitLocalConfig records cfg and returns InitLocalErr.
func (m *MockConfigManager) InitLocalConfig(cfg *domain.Config) error {
	if m.InitLocalErr != nil {
		return m.InitLocalErr
	}
	m.InitLocalCfg = cfg
	m.Local.Exists = true
	return nil
}
