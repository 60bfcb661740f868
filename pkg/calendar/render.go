package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// RenderOptions controls the styling of the rendered month.
type RenderOptions struct {
	HeaderStyle  lipgloss.Style
	EmptyStyle   lipgloss.Style
	EntryStyle   lipgloss.Style
	TodayStyle   lipgloss.Style
	HolidayStyle lipgloss.Style
	OutsideStyle lipgloss.Style
	ShowHeader   bool
	// Plain drops styling, e.g. when stdout is not a terminal.
	Plain bool
}

// DefaultRenderOptions is the style used by the month command.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		HeaderStyle:  lipgloss.NewStyle().Bold(true),
		EmptyStyle:   lipgloss.NewStyle().Faint(true),
		EntryStyle:   lipgloss.NewStyle().Bold(true),
		TodayStyle:   lipgloss.NewStyle().Reverse(true),
		HolidayStyle: lipgloss.NewStyle().Underline(true),
		OutsideStyle: lipgloss.NewStyle().Faint(true),
		ShowHeader:   true,
	}
}

// Render produces a multi-line Sunday-first grid for m. Days carrying tasks
// or events are followed by their count.
func Render(m Month, opts RenderOptions) string {
	var lines []string
	title := m.Month.Month().String() + " " + fmt.Sprint(m.Month.Year())
	if opts.ShowHeader {
		lines = append(lines, style(opts, opts.HeaderStyle).Render(center(title, 7*cellWidth-1)))
		lines = append(lines, style(opts, opts.HeaderStyle).Render("Su    Mo    Tu    We    Th    Fr    Sa"))
	}
	for _, week := range m.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, renderCell(c, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return strings.Join(lines, "\n")
}

const cellWidth = 6

func renderCell(c Cell, opts RenderOptions) string {
	text := fmt.Sprintf("%2d", c.Day.DayOfMonth())
	if n := len(c.Tasks) + len(c.Events); n > 0 && c.InMonth {
		text += fmt.Sprintf("·%-2d", n)
	} else {
		text += "   "
	}

	s := opts.EmptyStyle
	if !c.InMonth {
		return style(opts, opts.OutsideStyle).Render(text)
	}
	if c.HasEntries() {
		s = opts.EntryStyle
	}
	if c.IsHoliday {
		s = s.Inherit(opts.HolidayStyle)
	}
	if c.IsToday {
		s = s.Inherit(opts.TodayStyle)
	}
	return style(opts, s).Render(text)
}

func style(opts RenderOptions, s lipgloss.Style) lipgloss.Style {
	if opts.Plain {
		return lipgloss.NewStyle()
	}
	return s
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
