package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/sprite-ai/gerrit-cli/internal/model"
	"github.com/sprite-ai/gerrit-cli/internal/report"
)

const testOutput = `{"number": 101, "project": "openstack/nova", "subject": "Fix the frobnicator", "createdOn": 100}
{"number": 7, "project": "openstack/glance", "subject": "Add tests", "createdOn": 150}
{"type": "stats", "rowCount": 2}
`

func testColumns() []model.Column {
	return []model.Column{
		model.NewColumn("number", model.AlignRight, 0),
		model.NewColumn("project", model.AlignLeft, 0),
		model.NewColumn("subject", model.AlignLeft, 80),
	}
}

func setupModel(t *testing.T) Model {
	t.Helper()
	rep, err := report.Generate(time.Unix(200, 0), testOutput, testColumns())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	m := New(rep)
	m.color = false
	// Simulate window size
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newM.(Model)
}

func TestModelInit(t *testing.T) {
	m := setupModel(t)

	if m.Selected() != 0 {
		t.Errorf("expected selection 0, got %d", m.Selected())
	}
	if m.showDetail || m.showHelp {
		t.Error("expected list view on start")
	}
	if got := len(m.table.Rows()); got != 2 {
		t.Errorf("expected 2 table rows, got %d", got)
	}
}

func TestLayoutAlignment(t *testing.T) {
	m := setupModel(t)
	rows := m.table.Rows()

	// number is right aligned to the width of "Number"
	if rows[1][0] != "     7" {
		t.Errorf("expected right-aligned number, got %q", rows[1][0])
	}
	// project is left aligned to its widest cell
	if rows[1][1] != "openstack/glance" || rows[0][1] != "openstack/nova  " {
		t.Errorf("expected left-aligned project, got %q / %q", rows[0][1], rows[1][1])
	}
}

func TestNavigation(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	if m.Selected() != 1 {
		t.Errorf("expected selection 1 after down, got %d", m.Selected())
	}

	// Move past end: should stay
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	if m.Selected() != 1 {
		t.Errorf("expected selection 1 at end, got %d", m.Selected())
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = newM.(Model)
	if m.Selected() != 0 {
		t.Errorf("expected selection 0 after up, got %d", m.Selected())
	}
}

func TestNavigationUsesHelpBindings(t *testing.T) {
	m := setupModel(t)

	if diff := cmp.Diff(keys.Down.Keys(), m.table.KeyMap.LineDown.Keys()); diff != "" {
		t.Errorf("down binding mismatch (-help +table):\n%s", diff)
	}
	if diff := cmp.Diff(keys.Up.Keys(), m.table.KeyMap.LineUp.Keys()); diff != "" {
		t.Errorf("up binding mismatch (-help +table):\n%s", diff)
	}

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = newM.(Model)
	if m.Selected() != 1 {
		t.Errorf("expected selection 1 after arrow down, got %d", m.Selected())
	}
}

func TestDetailPane(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newM.(Model)
	if !m.showDetail {
		t.Fatal("expected detail pane after enter")
	}

	view := m.View()
	if !strings.Contains(view, "Change 7") {
		t.Error("expected detail header for change 7")
	}
	if !strings.Contains(view, `"subject": "Add tests"`) {
		t.Errorf("expected record JSON in detail pane:\n%s", view)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = newM.(Model)
	if m.showDetail {
		t.Error("expected list view after esc")
	}
	if m.Selected() != 1 {
		t.Errorf("selection should survive the detail pane, got %d", m.Selected())
	}
}

func TestToggleHelp(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newM.(Model)
	if !m.showHelp {
		t.Fatal("expected help after ?")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help view")
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newM.(Model)
	if m.showHelp {
		t.Error("expected help hidden after second ?")
	}
}

func TestViewRenders(t *testing.T) {
	m := setupModel(t)

	view := m.View()
	for _, want := range []string{"Subject", "Fix the frobnicator", "openstack/glance", "Change 1/2"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestEmptyReport(t *testing.T) {
	rep, err := report.Generate(time.Now(), `{"rowCount": 0}`, testColumns())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	m := New(rep)
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = newM.(Model)

	if m.Selected() != -1 {
		t.Errorf("expected no selection, got %d", m.Selected())
	}
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newM.(Model)
	if m.showDetail {
		t.Error("enter on an empty report must not open the detail pane")
	}
	if !strings.Contains(m.View(), "0 changes") {
		t.Error("expected empty status bar")
	}
}

func TestQuit(t *testing.T) {
	m := setupModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
