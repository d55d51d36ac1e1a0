package domain

import (
	"context"
	"time"
)

// Remote is the backend side of one synchronized collection.
// T is the canonical entity, I the body sent on create and update.
// Any non-success answer, including a transport failure, is returned as an error.
type Remote[T Entity, I any] interface {
	// List returns the full collection in server order.
	List(ctx context.Context) ([]T, error)

	// Create stores a draft and returns the entity with its assigned ID.
	Create(ctx context.Context, in I) (T, error)

	// Update replaces the writable fields of an existing entity.
	Update(ctx context.Context, id string, in I) (T, error)

	// Delete removes an entity. A 204 answer is a success.
	Delete(ctx context.Context, id string) error
}

// TaskRemote is the backend for tasks.
type TaskRemote = Remote[Task, TaskInput]

// CategoryRemote is the backend for categories.
type CategoryRemote = Remote[Category, CategoryInput]

// ContextRemote is the backend for context entries.
type ContextRemote = Remote[ContextEntry, ContextInput]

// Assistant provides AI suggestions and chat. Calls are stateless.
type Assistant interface {
	// Suggest returns suggestions for a task draft.
	Suggest(ctx context.Context, req SuggestionRequest) (*Suggestion, error)

	// Chat returns the assistant's reply to a message.
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// Logger writes operation logs.
// An empty kind logs to the global log only.
type Logger interface {
	Info(kind EntityKind, category, msg string)
	Debug(kind EntityKind, category, msg string)
	Warn(kind EntityKind, category, msg string)
	Error(kind EntityKind, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Info(EntityKind, string, string)  {}
func (NopLogger) Debug(EntityKind, string, string) {}
func (NopLogger) Warn(EntityKind, string, string)  {}
func (NopLogger) Error(EntityKind, string, string) {}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (local > global > default).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)

	// LoadLocal returns only the local configuration.
	LoadLocal() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetLocalConfigInfo returns information about the local config file.
	GetLocalConfigInfo() ConfigInfo

	// InitGlobalConfig writes the commented default template to the global path.
	InitGlobalConfig(cfg *Config) error

	// InitLocalConfig writes the commented default template to the local path.
	InitLocalConfig(cfg *Config) error
}
