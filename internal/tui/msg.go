package tui

import "github.com/runoshun/taskdeck/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgWorkspaceChanged carries fresh snapshots after any collection changed.
type MsgWorkspaceChanged struct {
	Tasks      []domain.Task
	Categories []domain.Category
	Entries    int // Number of context entries
}

func (MsgWorkspaceChanged) sealed() {}

// MsgRefreshed is sent when a full reload finished.
// Err joins the failures of the collections that could not be loaded.
type MsgRefreshed struct {
	Err error
}

func (MsgRefreshed) sealed() {}

// MsgTaskCreated is sent when the backend confirmed a new task.
type MsgTaskCreated struct {
	Task domain.Task
}

func (MsgTaskCreated) sealed() {}

// MsgCreateFailed is sent when a create was rejected.
// The draft stays in the inputs.
type MsgCreateFailed struct {
	Err error
}

func (MsgCreateFailed) sealed() {}

// MsgTaskDeleted is sent when a task is deleted.
type MsgTaskDeleted struct {
	Task domain.Task
}

func (MsgTaskDeleted) sealed() {}

// MsgTaskStatusUpdated is sent when a task status is updated.
type MsgTaskStatusUpdated struct {
	Task     domain.Task
	Previous domain.Status
}

func (MsgTaskStatusUpdated) sealed() {}

// MsgChatReply is sent when the assistant answered.
type MsgChatReply struct {
	Reply   string
	History []domain.ChatMessage
}

func (MsgChatReply) sealed() {}

// MsgChatFailed is sent when a chat turn failed.
type MsgChatFailed struct {
	Err error
}

func (MsgChatFailed) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}
