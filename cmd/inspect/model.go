package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bluescript-lang/runtime/gc"
	"github.com/bluescript-lang/runtime/object"
	"github.com/bluescript-lang/runtime/runtime"
)

const (
	historyWidth  = 60
	historyHeight = 10
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// model drives a runtime.Runtime through a scripted Op trace, rendering
// the heap's live state after every step. It never roots an allocation:
// every allocated value becomes garbage the instant it's made, which is
// the point — stepping through "gc" ops shows the free-list recover the
// words the unrooted allocations used. The step log is rendered through
// a bubbles/viewport so a long trace scrolls instead of being truncated.
type model struct {
	rt       *runtime.Runtime
	ops      []Op
	pos      int
	last     gc.Stats
	haveRun  bool
	history  []string
	viewport viewport.Model
	done     bool
}

func newModel(rt *runtime.Runtime, ops []Op) *model {
	vp := viewport.New(historyWidth, historyHeight)
	return &model{rt: rt, ops: ops, viewport: vp}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = min(historyWidth, msg.Width-2)
		m.viewport.Height = min(historyHeight, msg.Height-8)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter", "n", " ":
			m.step()
			return m, nil
		case "a":
			for !m.done {
				m.step()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) step() {
	if m.pos >= len(m.ops) {
		m.done = true
		return
	}
	op := m.ops[m.pos]
	m.pos++

	switch op.Kind {
	case "gc":
		m.last = m.rt.RunGC()
		m.haveRun = true
		m.history = append(m.history, fmt.Sprintf(
			"gc: live=%d free=%d overflow=%v", m.last.LiveWords, m.last.FreeWords, m.last.StackOverflowed))
	case "intarray":
		object.NewIntArray(m.rt.GC, op.N, 0)
		m.history = append(m.history, fmt.Sprintf("alloc intarray[%d]", op.N))
	case "vector":
		object.NewVector(m.rt.GC, op.N, 0)
		m.history = append(m.history, fmt.Sprintf("alloc vector[%d]", op.N))
	default:
		m.history = append(m.history, fmt.Sprintf("unknown op %q", op.Kind))
	}

	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
	if m.pos >= len(m.ops) {
		m.done = true
	}
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("BlueScript heap inspector"))
	b.WriteString("\n\n")

	b.WriteString(statStyle.Render(fmt.Sprintf("heap words: %d", m.rt.Heap.Size())))
	b.WriteString("\n")
	if m.haveRun {
		b.WriteString(statStyle.Render(fmt.Sprintf(
			"last gc: live=%d free=%d", m.last.LiveWords, m.last.FreeWords)))
		if m.last.StackOverflowed {
			b.WriteString(" ")
			b.WriteString(warnStyle.Render("(mark stack overflowed, orphan scan ran)"))
		}
	} else {
		b.WriteString(statStyle.Render("no gc run yet"))
	}
	b.WriteString("\n\n")

	b.WriteString(opStyle.Render(fmt.Sprintf("step %d/%d", m.pos, len(m.ops))))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")

	if m.done {
		b.WriteString(helpStyle.Render("trace complete • q quit"))
	} else {
		b.WriteString(helpStyle.Render("enter/n step • a run to end • q quit"))
	}
	return b.String()
}
