package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeChat:
		content = m.viewChat()
	case ModeNormal, ModeConfirm, ModeInputTitle, ModeInputDesc:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the main task list view.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if line := m.viewStatusLine(); line != "" {
		b.WriteString(line + "\n\n")
	}

	if len(m.taskList.Items()) == 0 {
		b.WriteString(m.viewEmptyState())
	} else {
		b.WriteString(m.styles.TaskList.Render(m.taskList.View()))
	}

	// Dialogs/overlays
	switch m.mode {
	case ModeNormal, ModeHelp, ModeChat:
		// No overlay for these modes
	case ModeConfirm:
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
	case ModeInputTitle:
		b.WriteString("\n")
		b.WriteString(m.viewTitleInput())
	case ModeInputDesc:
		b.WriteString("\n")
		b.WriteString(m.viewDescInput())
	}

	if m.mode == ModeNormal {
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return b.String()
}

// viewHeader renders the header with the collection counts.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("Tasks")

	info := fmt.Sprintf("showing %d of %d tasks · %d categories · %d context entries",
		len(m.taskList.Items()), len(m.tasks), len(m.categories), m.entryCount)
	if m.loading {
		info = "loading... · " + info
	}
	right := m.styles.HeaderInfo.Render(info)

	headerWidth := m.width - 6
	if headerWidth < 40 {
		headerWidth = 40
	}
	spacing := headerWidth - lipgloss.Width(title) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return m.styles.Header.Render(title + strings.Repeat(" ", spacing) + right)
}

// viewStatusLine renders the last error or notice.
func (m *Model) viewStatusLine() string {
	if m.err != nil {
		return m.styles.ErrorMsg.Render("Error: " + m.err.Error())
	}
	if m.notice != "" {
		return m.styles.NoticeMsg.Render(m.notice)
	}
	return ""
}

// viewEmptyState renders a friendly empty state message.
func (m *Model) viewEmptyState() string {
	var b strings.Builder
	b.WriteString("\n")
	if len(m.tasks) > 0 {
		b.WriteString(m.styles.Footer.Render("  All tasks are done\n\n"))
		b.WriteString(m.styles.Footer.Render("  Press "))
		b.WriteString(m.styles.FooterKey.Render("a"))
		b.WriteString(m.styles.Footer.Render(" to show them"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.styles.Footer.Render("  No tasks yet\n\n"))
	b.WriteString(m.styles.Footer.Render("  Press "))
	b.WriteString(m.styles.FooterKey.Render("n"))
	b.WriteString(m.styles.Footer.Render(" to create your first task"))
	b.WriteString("\n")
	return b.String()
}

// viewConfirmDialog renders the confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	if m.confirmAction == ConfirmNone {
		return ""
	}

	target := m.confirmTaskID
	for _, t := range m.tasks {
		if t.ID == m.confirmTaskID {
			target = fmt.Sprintf("%s (%s)", t.ID, t.Title)
			break
		}
	}

	title := m.styles.DialogTitle.Foreground(Colors.Error).Render("Delete task " + target + "?")
	prompt := m.styles.DialogPrompt.Render("This action cannot be undone.")

	yesBtn := m.styles.HelpKey.Render("[ y ] Confirm")
	noBtn := m.styles.Footer.Render("[ n ] Cancel")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yesBtn, "  ", noBtn)

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", prompt, "", buttons)
	return m.styles.Dialog.BorderForeground(Colors.Error).Render(content)
}

// viewTitleInput renders the title input dialog.
func (m *Model) viewTitleInput() string {
	title := m.styles.DialogTitle.Render("◆ New Task")
	stepInfo := m.styles.Footer.Render("Step 1 of 2")
	label := m.styles.InputPrompt.Render("Title")
	hint := m.styles.FooterKey.Render("enter") + m.styles.Footer.Render(" next  ") +
		m.styles.FooterKey.Render("esc") + m.styles.Footer.Render(" cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, title, stepInfo, "", label, m.titleInput.View(), "", hint)
	return m.styles.Dialog.Render(content)
}

// viewDescInput renders the description input dialog.
func (m *Model) viewDescInput() string {
	title := m.styles.DialogTitle.Render("◆ New Task")
	stepInfo := m.styles.Footer.Render("Step 2 of 2")
	titleLabel := m.styles.Footer.Render("Title: ") + m.styles.TaskTitle.Render(m.titleInput.Value())
	label := m.styles.InputPrompt.Render("Description (optional)")
	hint := m.styles.FooterKey.Render("enter") + m.styles.Footer.Render(" create  ") +
		m.styles.FooterKey.Render("esc") + m.styles.Footer.Render(" back")

	content := lipgloss.JoinVertical(lipgloss.Left, title, stepInfo, "", titleLabel, "", label, m.descInput.View(), "", hint)
	return m.styles.Dialog.Render(content)
}

// viewHelp renders the help view.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	content := m.help.FullHelpView(m.keys.FullHelp())
	hint := m.styles.Footer.Render("press ? or esc to close")

	return m.styles.Dialog.
		BorderForeground(Colors.Primary).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", content, "", hint))
}

// viewChat renders the assistant conversation.
func (m *Model) viewChat() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(m.styles.HeaderText.Render("Assistant")))
	b.WriteString("\n")
	b.WriteString(m.chatView.View())
	b.WriteString("\n\n")

	if line := m.viewStatusLine(); line != "" {
		b.WriteString(line + "\n")
	}
	b.WriteString(m.styles.InputPrompt.Render("> ") + m.chatInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.FooterKey.Render("enter") + m.styles.Footer.Render(" send  ") +
		m.styles.FooterKey.Render("pgup/pgdn") + m.styles.Footer.Render(" scroll  ") +
		m.styles.FooterKey.Render("esc") + m.styles.Footer.Render(" back"))

	return b.String()
}
