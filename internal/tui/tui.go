// Package tui implements the Bubble Tea report browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/gerrit-cli/internal/output"
	"github.com/sprite-ai/gerrit-cli/internal/report"
)

// Model is the top-level Bubble Tea model for the browser.
type Model struct {
	report *report.Report

	// UI state
	width  int
	height int

	table  table.Model
	detail viewport.Model

	showDetail bool
	showHelp   bool

	// Colour the detail pane
	color bool
}

// New creates a new TUI model for a generated report.
func New(rep *report.Report) Model {
	cols, rows := layout(rep)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithKeyMap(tableKeyMap()),
	)
	t.SetStyles(tableStyles())

	return Model{
		report: rep,
		table:  t,
		detail: viewport.New(80, 20),
		color:  true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(m.width - 2)
		m.table.SetHeight(max(m.height-4, 1)) // status bar + borders + header rule
		m.detail.Width = max(m.width-4, 1)
		m.detail.Height = max(m.height-6, 1)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case m.showDetail && key.Matches(msg, keys.Back):
			m.showDetail = false
			return m, nil

		case !m.showDetail && key.Matches(msg, keys.Detail):
			m.openDetail()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.showDetail {
		m.detail, cmd = m.detail.Update(msg)
	} else {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// Selected returns the index of the highlighted record, or -1 when the
// report is empty.
func (m Model) Selected() int {
	if len(m.report.Reviews) == 0 {
		return -1
	}
	return m.table.Cursor()
}

func (m *Model) openDetail() {
	i := m.Selected()
	if i < 0 || i >= len(m.report.Reviews) {
		return
	}
	s, err := output.RecordString(m.report.Reviews[i], m.color)
	if err != nil {
		s = fmt.Sprintf("cannot render record: %v", err)
	}
	m.detail.SetContent(s)
	m.detail.GotoTop()
	m.showDetail = true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var main string
	if m.showDetail {
		main = m.renderDetail()
	} else {
		main = listStyle.Render(m.table.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderDetail() string {
	title := "Change"
	if i := m.Selected(); i >= 0 {
		if n, ok := m.report.Reviews[i]["number"]; ok {
			title = fmt.Sprintf("Change %v", n)
		}
	}
	header := detailHeaderStyle.Render(title)
	return detailStyle.Width(max(m.width-2, 1)).Render(header + "\n" + m.detail.View())
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf(" %d changes", len(m.report.Rows))
	if i := m.Selected(); i >= 0 {
		left = fmt.Sprintf(" Change %d/%d", i+1, len(m.report.Rows))
	}

	mode := "list"
	if m.showDetail {
		mode = fmt.Sprintf("record %3.f%%", m.detail.ScrollPercent()*100)
	}
	right := fmt.Sprintf("%s  ? help ", mode)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(helpHeaderStyle.Render("gerrit browse: Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, k := range []key.Binding{keys.Up, keys.Down, keys.Detail, keys.Back, keys.Help, keys.Quit} {
		h := k.Help()
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(h.Key),
			h.Desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

// Run starts the browser on rep.
func Run(rep *report.Report, color bool) error {
	m := New(rep)
	m.color = color
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
