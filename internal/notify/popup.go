package notify

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	popupBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("6")).
				Padding(0, 1)
	popupTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	popupLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	popupTimerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// popupModel is the read-only notification surface rendered in a terminal
// popup. The model collects a single decision and quits; the caller executes
// the chosen action.
type popupModel struct {
	n        Notification
	keys     KeyMap
	help     help.Model
	timer    timer.Model
	width    int
	decision Decision
	decided  bool
}

func newPopupModel(n Notification) popupModel {
	return popupModel{
		n:        n,
		keys:     NewKeyMap(n.WorkspaceRoot != ""),
		help:     help.New(),
		timer:    timer.New(n.Timeout),
		decision: DecisionTimeout,
	}
}

func (m popupModel) Init() tea.Cmd {
	return m.timer.Init()
}

func (m popupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case timer.TimeoutMsg:
		m.decision = DecisionTimeout
		m.decided = true
		return m, tea.Quit

	case timer.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Dismiss):
			m.decision = DecisionDismiss
		case key.Matches(msg, m.keys.Switch):
			m.decision = DecisionSwitch
		case key.Matches(msg, m.keys.Open):
			m.decision = DecisionOpen
		case key.Matches(msg, m.keys.OpenDone):
			m.decision = DecisionOpenDone
		default:
			return m, nil
		}
		m.decided = true
		return m, tea.Quit
	}
	return m, nil
}

func (m popupModel) View() string {
	var b strings.Builder
	b.WriteString(popupTitleStyle.Render("Claude Code"))
	b.WriteString("  ")
	b.WriteString(popupTimerStyle.Render(m.timer.View()))
	b.WriteString("\n\n")
	b.WriteString(m.n.Message)
	b.WriteString("\n")
	b.WriteString(popupLabelStyle.Render(m.n.SessionLabel))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return popupBorderStyle.Render(b.String())
}

// RunPopup renders the notification on the current terminal and blocks
// until the operator decides or the timer expires.
func RunPopup(n Notification) (Decision, error) {
	if n.Timeout <= 0 {
		n.Timeout = DefaultTimeout
	}
	final, err := tea.NewProgram(newPopupModel(n)).Run()
	if err != nil {
		return DecisionDismiss, fmt.Errorf("popup failed: %w", err)
	}
	m, ok := final.(popupModel)
	if !ok || !m.decided {
		return DecisionDismiss, nil
	}
	return m.decision, nil
}
