package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/laptopstore/internal/model"
	"github.com/idilsaglam/laptopstore/internal/ui"
	"github.com/idilsaglam/laptopstore/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
)

var searchFields = []view.Field{
	{Key: "name", Label: "Search by Name"},
	{Key: "price", Label: "Search by Price"},
	{Key: "brand", Label: "Search by Brand"},
}

// Model is the laptop screen: create/edit form, search form and table.
type Model struct {
	ctx   context.Context
	api   API
	log   *slog.Logger
	state view.State

	mode   mode
	table  table.Model
	form   []textinput.Model // one per view.Fields entry
	search []textinput.Model // one per searchFields entry
	focus  int               // index into form or search, depending on mode

	keys   keyMap
	help   help.Model
	status string // last action, shown under the table
	width  int
	height int
}

func New(ctx context.Context, api API, logger *slog.Logger) Model {
	form := make([]textinput.Model, len(view.Fields))
	for i, f := range view.Fields {
		form[i] = newInput(f.Label)
	}
	search := make([]textinput.Model, len(searchFields))
	for i, f := range searchFields {
		search[i] = newInput(f.Label)
	}

	return Model{
		ctx:    ctx,
		api:    api,
		log:    logger,
		table:  newTable(),
		form:   form,
		search: search,
		keys:   defaultKeys(),
		help:   help.New(),
		width:  100,
		height: 30,
	}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder + "..."
	ti.CharLimit = 200
	return ti
}

func newTable() table.Model {
	cols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 20},
		{Title: "Price", Width: 10},
		{Title: "Brand", Width: 12},
		{Title: "Storage", Width: 10},
		{Title: "RAM", Width: 8},
		{Title: "Processor", Width: 16},
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("8")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Bold(true).Reverse(true).Foreground(lipgloss.NoColor{})
	t.SetStyles(s)
	return t
}

// State exposes the list/form state for callers that inspect the screen.
func (m Model) State() view.State { return m.state }

func (m Model) Init() tea.Cmd {
	return fetchCmd(m.ctx, m.api)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeTable()
		return m, nil

	case laptopsLoadedMsg:
		m.state.SetLaptops(msg.laptops)
		m.syncRows()
		m.log.Debug("laptops loaded", slog.Int("count", len(msg.laptops)))
		return m, nil

	case savedMsg:
		m.state.SubmitSucceeded()
		m.syncForm()
		m.leaveInputs()
		if msg.updated {
			m.status = "updated laptop " + itoa(msg.laptop.ID)
		} else {
			m.status = "added laptop " + itoa(msg.laptop.ID)
		}
		return m, fetchCmd(m.ctx, m.api)

	case deletedMsg:
		m.status = "deleted laptop " + itoa(msg.id)
		return m, fetchCmd(m.ctx, m.api)

	case errMsg:
		m.log.Error("Error "+msg.action, slog.String("error", msg.err.Error()))
		m.status = "error " + msg.action
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeSearch:
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		if m.state.EditingID != 0 {
			m.state.CancelEdit()
			m.syncForm()
		}
		return m, m.enter(modeForm)

	case key.Matches(msg, m.keys.Edit):
		l, ok := m.selected()
		if !ok || !m.state.Edit(l.ID) {
			return m, nil
		}
		m.syncForm()
		return m, m.enter(modeForm)

	case key.Matches(msg, m.keys.Delete):
		l, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, deleteCmd(m.ctx, m.api, l.ID)

	case key.Matches(msg, m.keys.Search):
		return m, m.enter(modeSearch)

	case key.Matches(msg, m.keys.Reset):
		m.state.Reset()
		m.syncForm()
		m.syncSearch()
		m.syncRows()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, fetchCmd(m.ctx, m.api)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		// Backing out of an edit abandons it; a create draft is kept.
		if m.state.EditingID != 0 {
			m.state.CancelEdit()
			m.syncForm()
		}
		m.leaveInputs()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.moveFocus(m.form, 1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.moveFocus(m.form, -1)

	case key.Matches(msg, m.keys.Submit):
		// The submit control stays disabled until name, price and brand are set.
		if !m.state.Form.CanSubmit() {
			return m, nil
		}
		l, ok := m.state.BeginSubmit()
		if !ok {
			return m, nil
		}
		return m, saveCmd(m.ctx, m.api, l)
	}

	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	m.state.Form.Set(view.Fields[m.focus].Key, m.form[m.focus].Value())
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Submit):
		m.leaveInputs()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.moveFocus(m.search, 1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.moveFocus(m.search, -1)
	}

	var cmd tea.Cmd
	m.search[m.focus], cmd = m.search[m.focus].Update(msg)
	switch searchFields[m.focus].Key {
	case "name":
		m.state.Search.Name = m.search[m.focus].Value()
	case "price":
		m.state.Search.Price = m.search[m.focus].Value()
	case "brand":
		m.state.Search.Brand = m.search[m.focus].Value()
	}
	// every keystroke re-filters
	m.state.ApplySearch()
	m.syncRows()
	return m, cmd
}

// enter switches to an input mode and focuses its first field.
func (m *Model) enter(md mode) tea.Cmd {
	m.mode = md
	m.focus = 0
	m.table.Blur()
	return m.inputs()[0].Focus()
}

// leaveInputs blurs every input and hands the keyboard back to the table.
func (m *Model) leaveInputs() {
	for i := range m.form {
		m.form[i].Blur()
	}
	for i := range m.search {
		m.search[i].Blur()
	}
	m.mode = modeList
	m.focus = 0
	m.table.Focus()
}

func (m *Model) inputs() []textinput.Model {
	if m.mode == modeSearch {
		return m.search
	}
	return m.form
}

func (m *Model) moveFocus(in []textinput.Model, delta int) tea.Cmd {
	in[m.focus].Blur()
	m.focus = (m.focus + delta + len(in)) % len(in)
	return in[m.focus].Focus()
}

func (m *Model) syncForm() {
	for i, f := range view.Fields {
		m.form[i].SetValue(m.state.Form.Value(f.Key))
		m.form[i].CursorEnd()
	}
}

func (m *Model) syncSearch() {
	vals := []string{m.state.Search.Name, m.state.Search.Price, m.state.Search.Brand}
	for i := range m.search {
		m.search[i].SetValue(vals[i])
	}
}

func (m *Model) syncRows() {
	rows := make([]table.Row, 0, len(m.state.Filtered))
	for _, l := range m.state.Filtered {
		rows = append(rows, table.Row(ui.LaptopRow(l)))
	}
	m.table.SetRows(rows)
	switch c := m.table.Cursor(); {
	case len(rows) == 0:
	case c >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	case c < 0:
		m.table.SetCursor(0)
	}
}

func (m *Model) resizeTable() {
	// form (6 rows + header) + search (3 rows + header) + chrome
	h := m.height - 24
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
	m.table.SetWidth(max(20, m.width-4))
}

func (m Model) selected() (model.Laptop, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.state.Filtered) {
		return model.Laptop{}, false
	}
	return m.state.Filtered[i], true
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, api API, logger *slog.Logger) error {
	p := tea.NewProgram(New(ctx, api, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
