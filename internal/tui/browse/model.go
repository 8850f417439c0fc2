// Package browse is the interactive queue browser. It lists queue entries,
// lets the operator jump to the originating session, and performs the same
// mark-done and delete operations the CLI exposes.
package browse

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"claudeq/internal/queue"
	"claudeq/internal/workspace"
)

// Model is the model for the interactive queue browser.
type Model struct {
	store *queue.Store
	nav   *workspace.Navigator

	entries     []queue.Entry
	cursor      int
	pendingOnly bool
	status      string

	keys   KeyMap
	help   help.Model
	width  int
	height int
}

// NewModel builds the browser over a queue store. nav may be nil when no
// workspace manager is available; navigation keys then report instead of
// acting.
func NewModel(store *queue.Store, nav *workspace.Navigator) Model {
	m := Model{
		store: store,
		nav:   nav,
		keys:  NewKeyMap(),
		help:  help.New(),
	}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	entries := m.store.Entries()
	if m.pendingOnly {
		var filtered []queue.Entry
		for _, e := range entries {
			if e.Status == queue.StatusPending {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	m.entries = entries
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (queue.Entry, bool) {
	if len(m.entries) == 0 {
		return queue.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Pending):
			m.pendingOnly = !m.pendingOnly
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			m.status = "Refreshed"
			return m, nil

		case key.Matches(msg, m.keys.Goto):
			entry, ok := m.selected()
			if !ok {
				return m, nil
			}
			if m.nav == nil {
				m.status = "No workspace manager available"
				return m, nil
			}
			if _, err := m.nav.SwitchTo(context.Background(), entry.SessionLabel); err != nil {
				m.status = fmt.Sprintf("Switch failed: %v", err)
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Done):
			changed, err := m.store.MarkMostRecentDone()
			switch {
			case err != nil:
				m.status = fmt.Sprintf("Mark done failed: %v", err)
			case changed:
				m.status = "Marked most recent entry done"
			default:
				m.status = "No pending entry to mark done"
			}
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			entry, ok := m.selected()
			if !ok {
				return m, nil
			}
			removed, err := m.store.DeleteEntry(entry.Index)
			switch {
			case err != nil:
				m.status = fmt.Sprintf("Delete failed: %v", err)
			case removed:
				m.status = fmt.Sprintf("Deleted entry %d", entry.Index)
			default:
				m.status = fmt.Sprintf("No entry at index %d", entry.Index)
			}
			m.refresh()
			return m, nil
		}
	}

	return m, nil
}

// Run starts the browser on the current terminal.
func Run(store *queue.Store, nav *workspace.Navigator) error {
	_, err := tea.NewProgram(NewModel(store, nav), tea.WithAltScreen()).Run()
	return err
}
