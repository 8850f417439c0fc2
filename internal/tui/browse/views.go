package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"claudeq/internal/queue"
	"claudeq/internal/utils"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	pendingCell   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneCell      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	if m.help.ShowAll {
		return m.help.View(m.keys)
	}

	var b strings.Builder

	title := "Task queue"
	if m.pendingOnly {
		title += " (pending)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(statusStyle.Render("Queue is empty"))
	} else {
		b.WriteString(headerStyle.Render(m.renderRow("#", "STATUS", "AGE", "SESSION", "MESSAGE")))
		b.WriteString("\n")
		for i, e := range m.entries {
			row := m.renderEntry(e)
			if i == m.cursor {
				row = selectedStyle.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderEntry(e queue.Entry) string {
	status := pendingCell.Render(string(e.Status))
	if e.Status == queue.StatusDone {
		status = doneCell.Render(string(e.Status))
	}
	return m.renderRow(
		fmt.Sprintf("%d", e.Index),
		status,
		utils.FormatDuration(time.Since(e.Timestamp)),
		e.SessionLabel,
		utils.TruncateStr(e.Message, m.messageWidth()),
	)
}

func (m Model) renderRow(index, status, age, session, message string) string {
	return utils.PadStr(index, 4) +
		utils.PadStr(status, 8) +
		utils.PadStr(age, 8) +
		utils.PadStr(session, 32) +
		message
}

func (m Model) messageWidth() int {
	w := m.width - 52
	if w < 20 {
		w = 20
	}
	return w
}
