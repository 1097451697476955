package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"rft/internal/recent"
	"rft/internal/view"
)

func testRows(labels ...string) []view.Row {
	rows := make([]view.Row, len(labels))
	for i, l := range labels {
		rows[i] = view.Row{Label: l, Path: "notes/" + l}
	}
	return rows
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func TestModel_ShowsRowLabels(t *testing.T) {
	m := sized(NewModel("Recent Files", testRows("a.md", "b.md")))

	out := m.View()
	for _, label := range []string{"a.md", "b.md"} {
		if !strings.Contains(out, label) {
			t.Errorf("view missing row %q", label)
		}
	}
}

func TestModel_ActiveRowMarked(t *testing.T) {
	rows := testRows("a.md", "b.md")
	rows[1].Active = true
	m := sized(NewModel("Recent Files", rows))

	items := m.list.Items()
	if got := items[0].(rowItem).Title(); strings.Contains(got, "●") {
		t.Errorf("inactive row carries active mark: %q", got)
	}
	if got := items[1].(rowItem).Title(); !strings.Contains(got, "●") {
		t.Errorf("active row missing mark: %q", got)
	}
}

func TestModel_RowsMsgReplacesItems(t *testing.T) {
	m := sized(NewModel("Recent Files", testRows("a.md")))

	next, _ := m.Update(rowsMsg(testRows("c.md", "a.md")))
	m = next.(Model)

	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if got := items[0].(rowItem).row.Label; got != "c.md" {
		t.Errorf("head row = %q, want c.md (most recent first)", got)
	}
}

func TestModel_CursorClampedOnShrink(t *testing.T) {
	m := sized(NewModel("Recent Files", testRows("a.md", "b.md", "c.md")))
	m.list.Select(2)

	next, _ := m.Update(rowsMsg(testRows("a.md")))
	m = next.(Model)

	if got := m.list.Index(); got != 0 {
		t.Errorf("cursor = %d after shrink, want 0", got)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := sized(NewModel("Recent Files", testRows("a.md")))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q produced %T, want tea.QuitMsg", cmd())
	}
}

func TestModel_EnterOpensSelected(t *testing.T) {
	var opened string
	rows := testRows("a.md", "b.md")
	rows[0].Open = func() error {
		opened = "a.md"
		return nil
	}
	m := sized(NewModel("Recent Files", rows))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg := cmd()
	if opened != "a.md" {
		t.Errorf("opened = %q, want a.md", opened)
	}
	st, ok := msg.(statusMsg)
	if !ok || st.isErr {
		t.Errorf("status = %#v, want success status", msg)
	}
}

func TestModel_OpenErrorShownInStatus(t *testing.T) {
	rows := testRows("a.md")
	rows[0].Open = func() error {
		return errFake("editor exploded")
	}
	m := sized(NewModel("Recent Files", rows))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd()
	st, ok := msg.(statusMsg)
	if !ok || !st.isErr {
		t.Fatalf("status = %#v, want error status", msg)
	}

	next, _ := m.Update(st)
	m = next.(Model)
	if !strings.Contains(m.View(), "editor exploded") {
		t.Error("error text not rendered in status line")
	}
}

func TestModel_EmptyList(t *testing.T) {
	m := sized(NewModel("Recent Files", nil))

	if !strings.Contains(m.View(), "no recent files yet") {
		t.Error("empty list placeholder missing")
	}
}

func TestRowItem_FilterValueIncludesPath(t *testing.T) {
	i := rowItem{row: view.Row{Label: "a.md", Path: "notes/a.md"}}
	if fv := i.FilterValue(); !strings.Contains(fv, "notes/a.md") {
		t.Errorf("FilterValue() = %q, want path included", fv)
	}
}

func TestUI_RedrawRebuildsRows(t *testing.T) {
	lookup := func(basename string) (recent.FileRef, bool) {
		return recent.NewFileRef("notes/" + basename), true
	}
	rows := view.BuildRows(
		[]recent.FileRef{recent.NewFileRef("notes/a.md")},
		recent.NewFileRef("notes/a.md"),
		lookup, func(recent.FileRef) error { return nil },
	)
	if len(rows) != 1 || !rows[0].Active {
		t.Fatalf("rows = %+v, want single active row", rows)
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
