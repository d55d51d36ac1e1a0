package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// ChatInput contains the parameters for one chat turn.
type ChatInput struct {
	History []domain.ChatMessage // Previous turns, oldest first
	Message string               // The user's message (required)
}

// ChatOutput contains the assistant's reply and the updated history.
type ChatOutput struct {
	History []domain.ChatMessage // History including this turn
	Reply   string               // The assistant's reply (Markdown)
}

// Chat is the use case for talking to the assistant about the current tasks.
type Chat struct {
	ws        *collection.Workspace
	assistant domain.Assistant
	logger    domain.Logger
}

// NewChat creates a new Chat use case.
func NewChat(ws *collection.Workspace, assistant domain.Assistant, logger domain.Logger) *Chat {
	return &Chat{
		ws:        ws,
		assistant: assistant,
		logger:    logger,
	}
}

// Execute sends the message with the current task snapshot.
// The history is only extended when the assistant answers.
func (uc *Chat) Execute(ctx context.Context, in ChatInput) (*ChatOutput, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, domain.ErrEmptyMessage
	}

	if err := ensureLoaded(ctx, uc.ws.Tasks); err != nil {
		return nil, err
	}

	reply, err := uc.assistant.Chat(ctx, domain.ChatRequest{
		Message:     msg,
		Tasks:       uc.ws.Tasks.Snapshot(),
		ChatHistory: slices.Clone(in.History),
	})
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	history := append(slices.Clone(in.History),
		domain.ChatMessage{Sender: domain.SenderUser, Text: msg},
		domain.ChatMessage{Sender: domain.SenderAI, Text: reply},
	)
	uc.logger.Debug("", "assistant", fmt.Sprintf("chat turn %d", len(history)/2))
	return &ChatOutput{Reply: reply, History: history}, nil
}
