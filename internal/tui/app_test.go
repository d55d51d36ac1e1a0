package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskdeck/internal/app"
	"github.com/runoshun/taskdeck/internal/domain"
	"github.com/runoshun/taskdeck/internal/testutil"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// testDeps holds the mocks behind a test model.
type testDeps struct {
	tasks      *testutil.MockRemote[domain.Task, domain.TaskInput]
	categories *testutil.MockRemote[domain.Category, domain.CategoryInput]
	entries    *testutil.MockRemote[domain.ContextEntry, domain.ContextInput]
	assistant  *testutil.MockAssistant
}

// newTestModel creates a Model over mock remotes with a sized window.
func newTestModel(t *testing.T) (*Model, *testDeps) {
	t.Helper()
	deps := &testDeps{
		tasks:      testutil.NewMockTaskRemote(),
		categories: testutil.NewMockCategoryRemote(),
		entries:    testutil.NewMockContextRemote(),
		assistant:  &testutil.MockAssistant{},
	}
	c := app.NewWithDeps(
		app.Config{},
		domain.NewDefaultConfig(),
		app.Remotes{Tasks: deps.tasks, Categories: deps.categories, Context: deps.entries},
		deps.assistant,
		&testutil.MockClock{NowTime: testNow},
		&testutil.MockLogger{},
	)
	m := New(c)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, deps
}

// load runs a full refresh and applies the resulting snapshot.
func load(t *testing.T, m *Model) {
	t.Helper()
	msg := m.refresh()()
	refreshed, ok := msg.(MsgRefreshed)
	require.True(t, ok, "refresh should return MsgRefreshed")
	m.Update(refreshed)
	applyChange(t, m)
}

// applyChange applies the pending workspace change.
func applyChange(t *testing.T, m *Model) {
	t.Helper()
	msg := m.waitForChange()()
	changed, ok := msg.(MsgWorkspaceChanged)
	require.True(t, ok, "expected MsgWorkspaceChanged, got %T", msg)
	m.Update(changed)
}

// runes builds a key message for typed text.
func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func listIDs(m *Model) []string {
	ids := make([]string, 0, len(m.taskList.Items()))
	for _, item := range m.taskList.Items() {
		ids = append(ids, item.(taskItem).task.ID)
	}
	return ids
}

// =============================================================================
// Workspace Feed Tests
// =============================================================================

func TestModel_Init_LoadsWorkspace(t *testing.T) {
	m, deps := newTestModel(t)
	work := "cat-1"
	deps.categories.Seed(domain.Category{ID: work, Name: "Work"})
	deps.tasks.Seed(
		domain.Task{ID: "task-1", Title: "Write report", Status: domain.StatusPending, CategoryID: &work},
		domain.Task{ID: "task-2", Title: "Call bank", Status: domain.StatusInProgress},
	)
	deps.entries.Seed(domain.ContextEntry{ID: "ctx-1", Content: "note", SourceType: domain.SourceNote, Timestamp: testNow})

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	load(t, m)

	assert.False(t, m.loading)
	assert.NoError(t, m.err)
	assert.Equal(t, []string{"task-1", "task-2"}, listIDs(m))
	assert.Equal(t, "Work", m.taskList.Items()[0].(taskItem).category)
	assert.Equal(t, 1, m.entryCount)
	assert.Contains(t, m.View(), "showing 2 of 2 tasks")
}

func TestModel_Refresh_ErrorShownInStatusLine(t *testing.T) {
	m, deps := newTestModel(t)
	deps.tasks.ListErr = errors.New("backend unavailable")

	m.Update(m.refresh()())

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "backend unavailable")
}

func TestModel_HidesDoneTasksUntilToggled(t *testing.T) {
	m, deps := newTestModel(t)
	deps.tasks.Seed(
		domain.Task{ID: "task-1", Title: "Open", Status: domain.StatusPending},
		domain.Task{ID: "task-2", Title: "Finished", Status: domain.StatusDone},
	)
	load(t, m)

	assert.Equal(t, []string{"task-1"}, listIDs(m))

	m.Update(runes("a"))
	assert.True(t, m.showDone)
	assert.Equal(t, []string{"task-1", "task-2"}, listIDs(m))
	assert.Equal(t, "Showing done tasks", m.notice)
}

func TestModel_ShowDoneFromConfig(t *testing.T) {
	deps := &testDeps{
		tasks:      testutil.NewMockTaskRemote(),
		categories: testutil.NewMockCategoryRemote(),
		entries:    testutil.NewMockContextRemote(),
	}
	cfg := domain.NewDefaultConfig()
	cfg.TUI.ShowDone = true
	c := app.NewWithDeps(app.Config{}, cfg,
		app.Remotes{Tasks: deps.tasks, Categories: deps.categories, Context: deps.entries},
		&testutil.MockAssistant{}, &testutil.MockClock{NowTime: testNow}, nil)

	m := New(c)
	defer m.Close()

	assert.True(t, m.showDone)
}

func TestModel_Close_StopsFeed(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := m.waitForChange()

	m.Close()
	m.Close()

	assert.Nil(t, cmd())
}

// =============================================================================
// Create Tests
// =============================================================================

func TestModel_CreateTask(t *testing.T) {
	m, deps := newTestModel(t)
	deps.tasks.Seed(domain.Task{ID: "task-9", Title: "Existing", Status: domain.StatusPending})
	load(t, m)

	m.Update(runes("n"))
	require.Equal(t, ModeInputTitle, m.mode)
	m.Update(runes("Buy milk"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeInputDesc, m.mode)
	m.Update(runes("two litres"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	created, ok := msg.(MsgTaskCreated)
	require.True(t, ok, "expected MsgTaskCreated, got %T", msg)
	assert.Equal(t, "Buy milk", created.Task.Title)
	assert.Equal(t, "two litres", created.Task.Description)

	m.Update(created)
	applyChange(t, m)

	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.titleInput.Value())
	assert.Empty(t, m.descInput.Value())
	assert.Equal(t, []string{created.Task.ID, "task-9"}, listIDs(m))
	require.NotNil(t, m.SelectedTask())
	assert.Equal(t, created.Task.ID, m.SelectedTask().ID)
	assert.Equal(t, 1, deps.tasks.CallCount("create"))
}

func TestModel_CreateTask_FailureKeepsDraft(t *testing.T) {
	m, deps := newTestModel(t)
	load(t, m)
	deps.tasks.CreateErr = errors.New("title already taken")

	m.Update(runes("n"))
	m.Update(runes("Buy milk"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("two litres"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m.Update(cmd())

	assert.Equal(t, ModeInputDesc, m.mode)
	assert.Equal(t, "Buy milk", m.titleInput.Value())
	assert.Equal(t, "two litres", m.descInput.Value())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "title already taken")
	assert.Empty(t, m.taskList.Items())
}

func TestModel_CreateTask_EmptyTitleStaysInTitleMode(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("n"))
	m.Update(runes("   "))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeInputTitle, m.mode)
}

func TestModel_CreateTask_EscapeDiscardsDraft(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("n"))
	m.Update(runes("Buy milk"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.titleInput.Value())
}

// =============================================================================
// Delete Tests
// =============================================================================

func TestModel_DeleteTask_Confirmed(t *testing.T) {
	m, deps := newTestModel(t)
	deps.tasks.Seed(domain.Task{ID: "task-1", Title: "Old", Status: domain.StatusPending})
	load(t, m)

	m.Update(runes("d"))
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, "task-1", m.confirmTaskID)
	assert.Contains(t, m.View(), "Delete task task-1 (Old)?")

	_, cmd := m.Update(runes("y"))
	require.NotNil(t, cmd)
	m.Update(cmd())
	applyChange(t, m)

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, ConfirmNone, m.confirmAction)
	assert.Empty(t, m.taskList.Items())
	assert.Empty(t, deps.tasks.Items)
	assert.Equal(t, "Deleted task task-1", m.notice)
}

func TestModel_DeleteTask_Cancelled(t *testing.T) {
	m, deps := newTestModel(t)
	deps.tasks.Seed(domain.Task{ID: "task-1", Title: "Old", Status: domain.StatusPending})
	load(t, m)

	m.Update(runes("d"))
	_, cmd := m.Update(runes("n"))

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 0, deps.tasks.CallCount("delete"))
}

func TestModel_DeleteTask_FailureKeepsTask(t *testing.T) {
	m, deps := newTestModel(t)
	deps.tasks.Seed(domain.Task{ID: "task-1", Title: "Old", Status: domain.StatusPending})
	load(t, m)
	deps.tasks.DeleteErr = errors.New("locked")

	m.Update(runes("d"))
	_, cmd := m.Update(runes("y"))
	m.Update(cmd())

	assert.Equal(t, ModeNormal, m.mode)
	require.Error(t, m.err)
	assert.Equal(t, []string{"task-1"}, listIDs(m))
	assert.True(t, m.container.Workspace.Tasks.Has("task-1"))
}

func TestModel_Delete_NoSelectionIsNoop(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("d"))

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
}

// =============================================================================
// Status Tests
// =============================================================================

func TestModel_CycleStatus(t *testing.T) {
	m, deps := newTestModel(t)
	deps.tasks.Seed(domain.Task{ID: "task-1", Title: "Report", Status: domain.StatusPending})
	load(t, m)

	_, cmd := m.Update(runes("s"))
	require.NotNil(t, cmd)
	m.Update(cmd())
	applyChange(t, m)

	assert.Equal(t, "Task task-1: Pending -> In Progress", m.notice)
	require.NotNil(t, m.SelectedTask())
	assert.Equal(t, domain.StatusInProgress, m.SelectedTask().Status)
}

func TestModel_CycleStatus_FailureKeepsStatus(t *testing.T) {
	m, deps := newTestModel(t)
	deps.tasks.Seed(domain.Task{ID: "task-1", Title: "Report", Status: domain.StatusPending})
	load(t, m)
	deps.tasks.UpdateErr = errors.New("conflict")

	_, cmd := m.Update(runes("s"))
	m.Update(cmd())

	require.Error(t, m.err)
	assert.Equal(t, domain.StatusPending, m.SelectedTask().Status)
}

// =============================================================================
// Chat Tests
// =============================================================================

func TestModel_Chat(t *testing.T) {
	m, deps := newTestModel(t)
	deps.assistant.Reply = "Start with **the report**."

	m.Update(runes("c"))
	require.Equal(t, ModeChat, m.mode)

	m.Update(runes("what first?"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "what first?", m.chatPending)
	assert.Empty(t, m.chatInput.Value())

	m.Update(cmd())

	assert.Empty(t, m.chatPending)
	require.Len(t, m.chatHistory, 2)
	assert.Equal(t, domain.SenderAI, m.chatHistory[1].Sender)
	assert.Contains(t, m.View(), "report")
	require.NotNil(t, deps.assistant.LastChat)
	assert.Equal(t, "what first?", deps.assistant.LastChat.Message)
}

func TestModel_Chat_FailureRestoresMessage(t *testing.T) {
	m, deps := newTestModel(t)
	deps.assistant.ChatErr = errors.New("assistant offline")

	m.Update(runes("c"))
	m.Update(runes("hello"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())

	require.Error(t, m.err)
	assert.Empty(t, m.chatHistory)
	assert.Equal(t, "hello", m.chatInput.Value())
	assert.Contains(t, m.View(), "assistant offline")
}

func TestModel_Chat_EscapeReturnsToList(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("c"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeNormal, m.mode)
}

// =============================================================================
// General Key Tests
// =============================================================================

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("?"))
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")

	m.Update(runes("?"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_KeyPressClearsMessages(t *testing.T) {
	m, _ := newTestModel(t)
	m.err = errors.New("old")
	m.notice = "old notice"

	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.NoError(t, m.err)
	assert.Empty(t, m.notice)
}
