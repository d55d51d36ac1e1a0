package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// DefaultSuggestionContext is how many recent context entries are sent
// when the caller does not pick them.
const DefaultSuggestionContext = 20

// SuggestTaskInput contains the parameters for requesting suggestions.
// Fields are ordered to minimize memory padding.
type SuggestTaskInput struct {
	Preferences  map[string]any        // Free-form user preferences (optional)
	Entries      []domain.ContextEntry // Context to send (nil = most recent entries)
	Title        string                // Task title (required)
	Description  string                // Task description (optional)
	Category     string                // Category name (optional)
	ContextLimit int                   // Entries sent when Entries is nil (0 = DefaultSuggestionContext)
}

// SuggestTaskOutput contains the assistant's suggestions.
type SuggestTaskOutput struct {
	Suggestion *domain.Suggestion // The suggestions
	Request    domain.SuggestionRequest
}

// SuggestTask is the use case for asking the assistant about a task draft.
type SuggestTask struct {
	ws        *collection.Workspace
	assistant domain.Assistant
	logger    domain.Logger
}

// NewSuggestTask creates a new SuggestTask use case.
func NewSuggestTask(ws *collection.Workspace, assistant domain.Assistant, logger domain.Logger) *SuggestTask {
	return &SuggestTask{
		ws:        ws,
		assistant: assistant,
		logger:    logger,
	}
}

// Execute requests suggestions. The backend rejects requests without
// context, so at least one entry is required.
func (uc *SuggestTask) Execute(ctx context.Context, in SuggestTaskInput) (*SuggestTaskOutput, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}

	entries := in.Entries
	if entries == nil {
		if err := ensureLoaded(ctx, uc.ws.Context); err != nil {
			return nil, err
		}
		limit := in.ContextLimit
		if limit <= 0 {
			limit = DefaultSuggestionContext
		}
		entries = uc.ws.Context.Snapshot()
		entries = entries[:min(limit, len(entries))]
	}
	if len(entries) == 0 {
		return nil, domain.ErrNoContext
	}

	req := domain.SuggestionRequest{
		TaskDetails: domain.SuggestionTarget{
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
		},
		ContextEntries:  entries,
		UserPreferences: in.Preferences,
		CurrentWorkload: uc.workload(ctx),
	}

	s, err := uc.assistant.Suggest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get suggestions: %w", err)
	}

	uc.logger.Info(domain.KindTask, "assistant", fmt.Sprintf("suggestions for %q (priority %d)", in.Title, s.Prioritization))
	return &SuggestTaskOutput{Suggestion: s, Request: req}, nil
}

// workload summarizes open tasks. It is omitted when tasks cannot be loaded.
func (uc *SuggestTask) workload(ctx context.Context) map[string]any {
	if err := ensureLoaded(ctx, uc.ws.Tasks); err != nil {
		return nil
	}
	counts := map[domain.Status]int{}
	for _, t := range uc.ws.Tasks.Snapshot() {
		counts[t.Status]++
	}
	return map[string]any{
		"pending":     counts[domain.StatusPending],
		"in_progress": counts[domain.StatusInProgress],
		"done":        counts[domain.StatusDone],
	}
}
