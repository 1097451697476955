// Package tui renders the recent-files list as an interactive terminal UI.
//
// The model consumes view rows and never touches the store directly; live
// updates arrive as messages sent by the bridge through the Redraw method.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rft/internal/recent"
	"rft/internal/view"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	activeMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(1, 2)
)

// KeyMap holds the bindings beyond the ones the list component owns.
type KeyMap struct {
	Open key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// rowItem adapts a view row to the list component.
type rowItem struct {
	row view.Row
}

func (i rowItem) Title() string {
	if i.row.Active {
		return activeMarkStyle.Render("● ") + i.row.Label
	}
	return "  " + i.row.Label
}

func (i rowItem) Description() string {
	return "  " + i.row.Path
}

func (i rowItem) FilterValue() string {
	return i.row.Label + " " + i.row.Path
}

// rowsMsg replaces the displayed rows.
type rowsMsg []view.Row

// statusMsg updates the status line.
type statusMsg struct {
	text  string
	isErr bool
}

// Model is the terminal UI state.
type Model struct {
	list   list.Model
	keys   KeyMap
	status string
	isErr  bool
	width  int
	height int
	ready  bool
}

// NewModel builds the UI model over an initial set of rows.
func NewModel(title string, rows []view.Row) Model {
	keys := DefaultKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(toItems(rows), delegate, 0, 0)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func toItems(rows []view.Row) []list.Item {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = rowItem{row: r}
	}
	return items
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
		m.list.SetSize(msg.Width, msg.Height-2)
		m.ready = true

	case rowsMsg:
		cmd := m.list.SetItems(toItems(msg))
		if m.list.Index() >= len(msg) && len(msg) > 0 {
			m.list.Select(len(msg) - 1)
		}
		return m, cmd

	case statusMsg:
		m.status = msg.text
		m.isErr = msg.isErr
		return m, nil

	case tea.KeyMsg:
		// While the list filter input is focused, keys belong to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Open):
			return m, m.openSelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// openSelected fires the selected row's open action off the UI goroutine.
func (m Model) openSelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(rowItem)
	if !ok || item.row.Open == nil {
		return nil
	}
	row := item.row
	return func() tea.Msg {
		if err := row.Open(); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		return statusMsg{text: "opened " + row.Label}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = titleStyle.Render(m.list.Title) + "\n" +
			emptyStyle.Render("no recent files yet")
	}

	status := m.status
	style := statusStyle
	if m.isErr {
		style = statusErrStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, style.Render(status))
}

// UI owns the running program and feeds it live updates.
type UI struct {
	program *tea.Program
	lookup  view.LookupFunc
	open    view.OpenFunc
}

// New builds the UI. The lookup and open funcs are used to rebuild rows on
// every redraw; open should not attach to the terminal while the UI runs.
func New(title string, initial []recent.FileRef, active recent.FileRef, lookup view.LookupFunc, open view.OpenFunc) *UI {
	m := NewModel(title, view.BuildRows(initial, active, lookup, open))
	return &UI{
		program: tea.NewProgram(m, tea.WithAltScreen()),
		lookup:  lookup,
		open:    open,
	}
}

// Run blocks until the user quits.
func (u *UI) Run() error {
	_, err := u.program.Run()
	return err
}

// Quit asks the program to exit.
func (u *UI) Quit() {
	u.program.Quit()
}

// Redraw rebuilds the rows and sends them to the running program. Safe to
// call from any goroutine.
func (u *UI) Redraw(files []recent.FileRef, active recent.FileRef) {
	u.program.Send(rowsMsg(view.BuildRows(files, active, u.lookup, u.open)))
}
