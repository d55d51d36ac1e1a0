package tui

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskdeck/internal/app"
	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
	"github.com/runoshun/taskdeck/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// Workspace feed
	changes chan struct{}
	done    chan struct{}
	cancels []func()

	// State (slices and maps)
	tasks       []domain.Task
	categories  domain.CategoryLookup
	chatHistory []domain.ChatMessage

	// Components (structs with pointers)
	keys     KeyMap
	styles   Styles
	help     help.Model
	taskList list.Model
	chatView viewport.Model

	// Input state (large structs)
	titleInput textinput.Model
	descInput  textinput.Model
	chatInput  textinput.Model

	closeOnce sync.Once

	// Strings
	notice        string
	confirmTaskID string
	pendingSelect string
	chatPending   string

	// Numeric state (smaller types last)
	mode          Mode
	confirmAction ConfirmAction
	width         int
	height        int
	entryCount    int
	showDone      bool
	loading       bool
}

// Run starts the dashboard and blocks until the user quits.
func Run(c *app.Container) error {
	m := New(c)
	defer m.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// New creates a new TUI Model with the given container.
// The model subscribes to the container's workspace; call Close when done.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 200

	di := textinput.New()
	di.Placeholder = "Task description (optional)"
	di.CharLimit = 1000

	ci := textinput.New()
	ci.Placeholder = "Ask about your tasks..."
	ci.CharLimit = 2000

	styles := DefaultStyles()
	delegate := newTaskDelegate(styles, c.Clock.Now)
	taskList := list.New([]list.Item{}, delegate, 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(true)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	m := &Model{
		container:  c,
		mode:       ModeNormal,
		keys:       DefaultKeyMap(),
		styles:     styles,
		help:       help.New(),
		taskList:   taskList,
		chatView:   viewport.New(0, 0),
		titleInput: ti,
		descInput:  di,
		chatInput:  ci,
		categories: domain.CategoryLookup{},
		changes:    make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	if c.AppConfig != nil {
		m.showDone = c.AppConfig.TUI.ShowDone
	}
	m.subscribe(c.Workspace)
	return m
}

// subscribe registers for changes of every collection.
// Notifications are coalesced: the feed only records that something changed.
func (m *Model) subscribe(ws *collection.Workspace) {
	changes := m.changes
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}
	m.cancels = append(m.cancels,
		ws.Tasks.Subscribe(func([]domain.Task) { notify() }),
		ws.Categories.Subscribe(func([]domain.Category) { notify() }),
		ws.Context.Subscribe(func([]domain.ContextEntry) { notify() }),
	)
}

// Close cancels the workspace subscriptions and stops the feed.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		for _, cancel := range m.cancels {
			cancel()
		}
		if m.done != nil {
			close(m.done)
		}
	})
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(
		m.waitForChange(),
		m.refresh(),
	)
}

// waitForChange returns a command that waits for the next workspace change
// and reads fresh snapshots.
func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes, done, ws := m.changes, m.done, m.container.Workspace
	return func() tea.Msg {
		select {
		case <-changes:
		case <-done:
			return nil
		}
		return MsgWorkspaceChanged{
			Tasks:      ws.Tasks.Snapshot(),
			Categories: ws.Categories.Snapshot(),
			Entries:    ws.Context.Len(),
		}
	}
}

// refresh returns a command that reloads every collection.
func (m *Model) refresh() tea.Cmd {
	ws := m.container.Workspace
	return func() tea.Msg {
		return MsgRefreshed{Err: ws.LoadAll(context.Background())}
	}
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	if ti, ok := m.taskList.SelectedItem().(taskItem); ok {
		task := ti.task
		return &task
	}
	return nil
}

// visibleTasks returns the tasks shown in the list.
func (m *Model) visibleTasks() []domain.Task {
	if m.showDone {
		return m.tasks
	}
	visible := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.Status != domain.StatusDone {
			visible = append(visible, t)
		}
	}
	return visible
}

// updateTaskList updates the list items and keeps the selection on the same task.
func (m *Model) updateTaskList() {
	selected := m.pendingSelect
	if selected == "" {
		if t := m.SelectedTask(); t != nil {
			selected = t.ID
		}
	}

	visible := m.visibleTasks()
	items := make([]list.Item, 0, len(visible))
	index := -1
	for i, task := range visible {
		items = append(items, taskItem{task: task, category: m.categories.NameOf(task)})
		if task.ID == selected {
			index = i
		}
	}
	m.taskList.SetItems(items)

	if index >= 0 {
		m.taskList.Select(index)
		if selected == m.pendingSelect {
			m.pendingSelect = ""
		}
	}
}

// updateLayoutSizes resizes the components after a window change.
func (m *Model) updateLayoutSizes() {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	listHeight := m.height - 9
	if listHeight < 3 {
		listHeight = 3
	}
	m.taskList.SetSize(width, listHeight)

	chatHeight := m.height - 10
	if chatHeight < 3 {
		chatHeight = 3
	}
	m.chatView.Width = width
	m.chatView.Height = chatHeight
	m.chatInput.Width = width - 4
	m.updateChatView()
}

// createTask returns a command that creates a new task.
func (m *Model) createTask(title, desc string) tea.Cmd {
	uc := m.container.CreateTaskUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.CreateTaskInput{
			Title:       strings.TrimSpace(title),
			Description: strings.TrimSpace(desc),
		})
		if err != nil {
			return MsgCreateFailed{Err: err}
		}
		return MsgTaskCreated{Task: out.Task}
	}
}

// deleteTask returns a command that deletes a task.
func (m *Model) deleteTask(id string) tea.Cmd {
	uc := m.container.DeleteTaskUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.DeleteTaskInput{ID: id})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskDeleted{Task: out.Task}
	}
}

// cycleStatus returns a command that advances a task to its next status.
func (m *Model) cycleStatus(id string) tea.Cmd {
	uc := m.container.SetTaskStatusUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.SetTaskStatusInput{ID: id, Cycle: true})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskStatusUpdated{Task: out.Task, Previous: out.Previous}
	}
}

// sendChat returns a command that sends one chat turn.
func (m *Model) sendChat(message string) tea.Cmd {
	uc := m.container.ChatUseCase()
	history := m.chatHistory
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ChatInput{Message: message, History: history})
		if err != nil {
			return MsgChatFailed{Err: err}
		}
		return MsgChatReply{Reply: out.Reply, History: out.History}
	}
}
