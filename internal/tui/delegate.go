package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/taskdeck/internal/domain"
)

// deadlineLayout is the layout used for deadlines in the list.
const deadlineLayout = "Jan 02 15:04"

// rowPrefixWidth is the width of "  > ○ Todo   50  " before the title.
const rowPrefixWidth = 17

type taskItem struct {
	category string
	task     domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Title
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// truncate shortens s to fit width terminal cells.
func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// padRight pads s with spaces to width terminal cells.
func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

type taskDelegate struct {
	now    func() time.Time
	styles Styles
}

func newTaskDelegate(styles Styles, now func() time.Time) taskDelegate {
	if now == nil {
		now = time.Now
	}
	return taskDelegate{styles: styles, now: now}
}

func (d taskDelegate) Height() int {
	return 2
}

func (d taskDelegate) Spacing() int {
	return 1
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()
	listWidth := m.Width()

	indicator := " "
	titleStyle := d.styles.TaskTitle
	descStyle := d.styles.TaskDesc
	statusStyle := d.styles.StatusStyle(task.Status)
	if selected {
		indicator = ">"
		titleStyle = d.styles.TaskTitleSelected
		descStyle = d.styles.TaskDescSelected
		statusStyle = statusStyle.Bold(true)
	}

	category := ""
	if ti.category != "" {
		category = "#" + ti.category
	}
	maxTitle := listWidth - rowPrefixWidth - runewidth.StringWidth(category) - 4
	title := truncate(escapeNewlines(task.Title), maxTitle)

	line := "  " + d.styles.SelectionIndicator.Render(indicator) + " " +
		statusStyle.Render(fmt.Sprintf("%s %-5s", StatusIcon(task.Status), StatusText(task.Status))) + " " +
		d.styles.TaskPriority.Render(fmt.Sprintf("%3d", task.PriorityScore)) + "  " +
		titleStyle.Render(title)
	if category != "" {
		line += "  " + d.styles.TaskCategory.Render(category)
	}
	_, _ = fmt.Fprintln(w, line)

	var parts []string
	due := ""
	if task.Deadline != nil {
		due = "due " + task.Deadline.Local().Format(deadlineLayout)
		parts = append(parts, due)
	}
	if task.Description != "" {
		parts = append(parts, escapeNewlines(task.Description))
	}
	detail := truncate(strings.Join(parts, " · "), listWidth-rowPrefixWidth-2)
	detail = padRight(strings.Repeat(" ", rowPrefixWidth)+detail, listWidth)

	indent := strings.Repeat(" ", rowPrefixWidth)
	if due != "" && isOverdue(task, d.now()) && strings.HasPrefix(detail, indent+due) {
		// Highlight only the deadline part.
		rest := strings.TrimPrefix(detail, indent+due)
		_, _ = fmt.Fprint(w, indent+d.styles.TaskOverdue.Render(due)+descStyle.Render(rest))
		return
	}
	_, _ = fmt.Fprint(w, descStyle.Render(detail))
}

// isOverdue returns true if an unfinished task is past its deadline.
func isOverdue(t domain.Task, now time.Time) bool {
	return t.Deadline != nil && t.Status != domain.StatusDone && t.Deadline.Before(now)
}
