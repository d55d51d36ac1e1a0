package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/runoshun/taskdeck/internal/domain"
)

// markdown renders assistant replies for the chat view.
// It returns the text unchanged when rendering fails.
func markdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// chatTranscript renders the conversation, oldest turn first.
// pending is a sent message that has not been answered yet.
func (m *Model) chatTranscript(width int) string {
	if len(m.chatHistory) == 0 && m.chatPending == "" {
		return m.styles.Footer.Render("Ask the assistant about your tasks.")
	}

	var b strings.Builder
	for _, msg := range m.chatHistory {
		switch msg.Sender {
		case domain.SenderUser:
			b.WriteString(m.styles.ChatUser.Render("You") + "\n")
			b.WriteString(msg.Text + "\n\n")
		default:
			b.WriteString(m.styles.ChatAI.Render("Assistant") + "\n")
			b.WriteString(markdown(msg.Text, width) + "\n\n")
		}
	}
	if m.chatPending != "" {
		b.WriteString(m.styles.ChatUser.Render("You") + "\n")
		b.WriteString(m.chatPending + "\n\n")
		b.WriteString(m.styles.Footer.Render("Waiting for the assistant...") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// updateChatView refreshes the transcript and scrolls to the newest turn.
func (m *Model) updateChatView() {
	width := m.chatView.Width
	if width < 20 {
		width = 20
	}
	m.chatView.SetContent(m.chatTranscript(width))
	m.chatView.GotoBottom()
}
