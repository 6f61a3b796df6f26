package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/laptopstore/internal/ui"
	"github.com/idilsaglam/laptopstore/internal/view"
)

const labelWidth = 17

func (m Model) View() string {
	t := ui.Current()

	var b strings.Builder
	b.WriteString(m.formView())
	b.WriteString("\n")
	b.WriteString(m.searchView())
	b.WriteString("\n")

	header := fmt.Sprintf("%s   %s %d  %s %d",
		t.Title.Render("Laptop List"),
		t.Accent.Render("Showing"), len(m.state.Filtered),
		t.Muted.Render("of"), len(m.state.Laptops),
	)
	b.WriteString(header + "\n")
	if len(m.state.Filtered) == 0 {
		b.WriteString(t.Muted.Render("no laptops") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	if m.status != "" {
		st := t.Muted
		if strings.HasPrefix(m.status, "error") {
			st = t.Error
		}
		b.WriteString(st.Render(m.status) + "\n")
	}

	switch m.mode {
	case modeForm:
		b.WriteString(m.help.ShortHelpView(m.keys.formHelp()))
	case modeSearch:
		b.WriteString(m.help.ShortHelpView(m.keys.searchHelp()))
	default:
		b.WriteString(m.help.ShortHelpView(m.keys.listHelp()))
	}
	return ui.Panel(strings.Split(b.String(), "\n"))
}

func (m Model) formView() string {
	t := ui.Current()

	title := "Add Laptop"
	if m.state.EditingID != 0 {
		title = "Edit Laptop #" + itoa(m.state.EditingID)
	}
	lines := []string{sectionTitle(title, m.mode == modeForm)}

	problems := map[string]string{}
	if m.state.Submitted {
		for _, p := range m.state.Form.Problems() {
			problems[p.Field] = p.Message
		}
	}
	for i, f := range view.Fields {
		line := t.Muted.Render(padLabel(f.Label+":")) + m.form[i].View()
		if msg, ok := problems[f.Key]; ok {
			line += "  " + t.Error.Render(msg)
		}
		lines = append(lines, line)
	}

	submit := "[enter] " + title
	if m.state.EditingID != 0 {
		submit = "[enter] Save Laptop"
	}
	if m.state.Form.CanSubmit() {
		lines = append(lines, t.Accent.Render(submit))
	} else {
		lines = append(lines, t.Muted.Render(submit+" (name, price and brand required)"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) searchView() string {
	t := ui.Current()
	lines := []string{sectionTitle("Search", m.mode == modeSearch)}
	for i, f := range searchFields {
		lines = append(lines, t.Muted.Render(padLabel(f.Label+":"))+m.search[i].View())
	}
	return strings.Join(lines, "\n")
}

func sectionTitle(s string, active bool) string {
	t := ui.Current()
	if active {
		return t.Selected.Render(" " + s + " ")
	}
	return t.Title.Render(s)
}

func padLabel(s string) string {
	if n := lipgloss.Width(s); n < labelWidth {
		return s + strings.Repeat(" ", labelWidth-n)
	}
	return s + " "
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
