package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/laptopstore/internal/model"
)

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Success.Render("✔ "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Error.Render("✖ "+msg))
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// Column widths for the plain laptop table; Name and Processor get the slack.
var columns = []struct {
	title string
	width int
}{
	{"ID", 5}, {"Name", 22}, {"Price", 10}, {"Brand", 12},
	{"Storage", 10}, {"RAM", 8}, {"Processor", 18},
}

// FormatPrice drops a trailing ".0" the way the backend's JSON does.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// LaptopRow returns the table cells of l in column order.
func LaptopRow(l model.Laptop) []string {
	return []string{
		strconv.FormatInt(l.ID, 10), l.Name, FormatPrice(l.Price), l.Brand,
		l.Storage, l.RAM, l.Processor,
	}
}

// LaptopLines renders laptops as aligned text rows with a header.
func LaptopLines(laptops []model.Laptop) []string {
	t := Current()
	if len(laptops) == 0 {
		return []string{t.Muted.Render("no laptops")}
	}
	head := make([]string, len(columns))
	for i, c := range columns {
		head[i] = pad(c.title, c.width)
	}
	out := []string{t.Accent.Render(strings.Join(head, " "))}
	for _, l := range laptops {
		cells := LaptopRow(l)
		for i, c := range columns {
			cells[i] = pad(truncate(cells[i], c.width), c.width)
		}
		out = append(out, strings.Join(cells, " "))
	}
	return out
}

// LaptopDetail renders a single record as label/value lines.
func LaptopDetail(l model.Laptop) []string {
	t := Current()
	row := LaptopRow(l)
	out := []string{t.Title.Render(l.Name)}
	for i, c := range columns {
		out = append(out, fmt.Sprintf("%s %s", t.Muted.Render(pad(c.title+":", 11)), row[i]))
	}
	return out
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 3 {
		return string(r[:w])
	}
	return string(r[:w-3]) + "..."
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
