package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskdeck/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgWorkspaceChanged:
		m.tasks = msg.Tasks
		m.categories = domain.NewCategoryLookup(msg.Categories)
		m.entryCount = msg.Entries
		m.updateTaskList()
		return m, m.waitForChange()

	case MsgRefreshed:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
		}
		return m, nil

	case MsgTaskCreated:
		m.mode = ModeNormal
		m.titleInput.Reset()
		m.descInput.Reset()
		m.descInput.Blur()
		m.notice = fmt.Sprintf("Created task %s", msg.Task.ID)
		m.pendingSelect = msg.Task.ID
		m.updateTaskList()
		return m, nil

	case MsgCreateFailed:
		// Keep the draft so the user can fix it and retry.
		m.err = msg.Err
		return m, nil

	case MsgTaskDeleted:
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		m.confirmTaskID = ""
		m.notice = fmt.Sprintf("Deleted task %s", msg.Task.ID)
		return m, nil

	case MsgTaskStatusUpdated:
		m.notice = fmt.Sprintf("Task %s: %s -> %s", msg.Task.ID, msg.Previous.Display(), msg.Task.Status.Display())
		return m, nil

	case MsgChatReply:
		m.chatHistory = msg.History
		m.chatPending = ""
		m.updateChatView()
		return m, nil

	case MsgChatFailed:
		m.err = msg.Err
		if m.chatInput.Value() == "" {
			m.chatInput.SetValue(m.chatPending)
		}
		m.chatPending = ""
		m.updateChatView()
		return m, nil

	case MsgError:
		m.err = msg.Err
		if m.mode == ModeConfirm {
			m.mode = ModeNormal
		}
		m.confirmAction = ConfirmNone
		m.confirmTaskID = ""
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear messages on any key press
	m.err = nil
	m.notice = ""

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeInputTitle:
		return m.handleInputTitleMode(msg)
	case ModeInputDesc:
		return m.handleInputDescMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeChat:
		return m.handleChatMode(msg)
	}

	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.mode = ModeInputTitle
		m.titleInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDelete
		m.confirmTaskID = task.ID
		return m, nil

	case key.Matches(msg, m.keys.Status):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.cycleStatus(task.ID)

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.refresh()

	case key.Matches(msg, m.keys.ShowDone):
		m.showDone = !m.showDone
		m.updateTaskList()
		if m.showDone {
			m.notice = "Showing done tasks"
		} else {
			m.notice = "Hiding done tasks"
		}
		return m, nil

	case key.Matches(msg, m.keys.Chat):
		m.mode = ModeChat
		m.chatInput.Focus()
		m.updateChatView()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		m.confirmTaskID = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		switch m.confirmAction {
		case ConfirmNone:
			// Nothing to confirm
		case ConfirmDelete:
			return m, m.deleteTask(m.confirmTaskID)
		}
	}

	return m, nil
}

func (m *Model) handleInputTitleMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.titleInput.Reset()
		m.descInput.Reset()
		m.titleInput.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		if strings.TrimSpace(m.titleInput.Value()) == "" {
			return m, nil
		}
		m.mode = ModeInputDesc
		m.titleInput.Blur()
		m.descInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m *Model) handleInputDescMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeInputTitle
		m.descInput.Blur()
		m.titleInput.Focus()
		return m, nil

	case msg.Type == tea.KeyEnter:
		return m, m.createTask(m.titleInput.Value(), m.descInput.Value())
	}

	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)
	return m, cmd
}

func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}

func (m *Model) handleChatMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.chatInput.Blur()
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case msg.Type == tea.KeyEnter:
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" || m.chatPending != "" {
			return m, nil
		}
		m.chatPending = text
		m.chatInput.Reset()
		m.updateChatView()
		return m, m.sendChat(text)

	case msg.Type == tea.KeyPgUp, msg.Type == tea.KeyPgDown:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}
