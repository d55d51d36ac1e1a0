package domain

import "time"

// SuggestionRequest is sent to the assistant to get task suggestions.
// Fields are ordered to minimize memory padding.
type SuggestionRequest struct {
	UserPreferences map[string]any   `json:"user_preferences,omitempty"`
	CurrentWorkload map[string]any   `json:"current_workload,omitempty"`
	ContextEntries  []ContextEntry   `json:"context_entries"`
	TaskDetails     SuggestionTarget `json:"task_details"`
}

// SuggestionTarget describes the task the suggestions are for.
type SuggestionTarget struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// Suggestion is the assistant's answer to a SuggestionRequest.
type Suggestion struct {
	DeadlineRecommendation  *time.Time `json:"deadline_recommendation,omitempty" yaml:"deadline_recommendation,omitempty"`
	EnhancedDescription     string     `json:"enhanced_description,omitempty" yaml:"enhanced_description,omitempty"`
	CategoryRecommendations []string   `json:"category_recommendations,omitempty" yaml:"category_recommendations,omitempty"`
	Prioritization          int        `json:"prioritization" yaml:"prioritization"`
}

// ChatSender identifies who wrote a chat message.
type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderAI   ChatSender = "ai"
)

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
}

// ChatRequest is sent to the assistant chat endpoint.
type ChatRequest struct {
	Message     string        `json:"message"`
	Tasks       []Task        `json:"tasks"`
	ChatHistory []ChatMessage `json:"chat_history"`
}

// ChatReply is the assistant chat endpoint's answer.
type ChatReply struct {
	Response string `json:"response"`
}
