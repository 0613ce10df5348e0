// Package statusui is the optional -status debug view: a bubbletea
// program that renders a read-only snapshot of ownership/list state,
// grounded on the teacher's ui.Model (Init/Update/View) and lipgloss
// table styling.
package statusui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Snapshot is a point-in-time, read-only copy of the state the controller
// wants visible. The controller publishes these; nothing here ever feeds
// back into the main loop (§4.9, §5's goroutine-isolation guarantee).
type Snapshot struct {
	Owned       bool
	PendingReq  bool
	MenuVisible bool
	Cursor      int
	Entries     []string
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	curStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type snapshotMsg Snapshot

// Model is the bubbletea model. Construct with New and feed it updates by
// sending Snapshot values on the channel returned alongside it by New,
// then run it with tea.NewProgram(model).
type Model struct {
	updates chan Snapshot
	latest  Snapshot
}

// New returns a Model and the channel the controller should publish
// Snapshot values to. The channel is buffered so a slow TUI redraw never
// blocks the main event loop.
func New() (*Model, chan<- Snapshot) {
	ch := make(chan Snapshot, 8)
	return &Model{updates: ch}, ch
}

func (m *Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.updates
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg(s)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.latest = Snapshot(msg)
		return m, m.waitForUpdate()
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("multiselect status"))
	b.WriteString("\n\n")

	owner := dimStyle.Render("not owner")
	if m.latest.Owned {
		owner = curStyle.Render("owner")
	}
	b.WriteString(fmt.Sprintf("ownership: %s\n", owner))

	pending := dimStyle.Render("none")
	if m.latest.PendingReq {
		pending = errStyle.Render("pending")
	}
	b.WriteString(fmt.Sprintf("request:   %s\n", pending))

	menu := dimStyle.Render("hidden")
	if m.latest.MenuVisible {
		menu = curStyle.Render("visible")
	}
	b.WriteString(fmt.Sprintf("menu:      %s\n\n", menu))

	if len(m.latest.Entries) == 0 {
		b.WriteString(dimStyle.Render("(empty list)\n"))
	}
	for i, e := range m.latest.Entries {
		line := fmt.Sprintf("%2d. %s", i, e)
		if i == m.latest.Cursor {
			b.WriteString(curStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("\nq to quit status view\n"))
	return b.String()
}
