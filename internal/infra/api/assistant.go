package api

import (
	"context"
	"net/http"

	"github.com/runoshun/taskdeck/internal/domain"
)

// Ensure Client implements domain.Assistant.
var _ domain.Assistant = (*Client)(nil)

const (
	suggestionsPath = "tasks/suggestions/"
	chatPath        = "ai-chat/"
)

// Suggest implements domain.Assistant.
func (c *Client) Suggest(ctx context.Context, req domain.SuggestionRequest) (*domain.Suggestion, error) {
	if req.ContextEntries == nil {
		req.ContextEntries = []domain.ContextEntry{}
	}
	var w wireSuggestion
	if err := c.do(ctx, http.MethodPost, suggestionsPath, req, &w); err != nil {
		return nil, err
	}
	s := w.toDomain()
	return &s, nil
}

// Chat implements domain.Assistant.
func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	if req.Tasks == nil {
		req.Tasks = []domain.Task{}
	}
	if req.ChatHistory == nil {
		req.ChatHistory = []domain.ChatMessage{}
	}
	var reply domain.ChatReply
	if err := c.do(ctx, http.MethodPost, chatPath, req, &reply); err != nil {
		return "", err
	}
	return reply.Response, nil
}
