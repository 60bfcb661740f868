package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/worklog/pkg/bookmark"
	"tableflip.dev/worklog/pkg/calendar"
	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/glyph"
	"tableflip.dev/worklog/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

const idWidth = len("00000000-0000-0000-0000-000000000000  ")

var spacing = strings.Repeat(" ", idWidth)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	pad := idWidth - len(id)
	if pad < 1 {
		pad = 1
	}
	_, _ = y.Fprint(pp.out(), id+strings.Repeat(" ", pad))
}

// Tasks prints one line per task: category marker, title and range.
func (pp *PrettyPrint) Tasks(tasks ...entry.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}
	faint := color.New(color.Faint)
	for _, t := range tasks {
		pp.id(t.ID)
		_, _ = fmt.Fprintf(pp.out(), "%s %s", categoryMark(t), t.Title)
		if r := span(t); r != "" {
			_, _ = faint.Fprintf(pp.out(), "  %s", r)
		}
		_, _ = fmt.Fprintln(pp.out())
	}
	pp.NewLine()
}

func categoryMark(t entry.Task) string {
	m := glyph.ForTask(t)
	switch m {
	case glyph.Routine:
		return color.New(color.FgCyan).Sprint(m)
	case glyph.Management:
		return color.New(color.FgMagenta).Sprint(m)
	default:
		return m.String()
	}
}

// span renders the start/deadline pair the way InRange reads it.
func span(t entry.Task) string {
	switch {
	case t.StartDate != nil && t.Deadline != nil:
		return fmt.Sprintf("%s %s %s", t.StartDate, glyph.Ranged, t.Deadline)
	case t.StartDate != nil:
		return "from " + t.StartDate.String()
	case t.Deadline != nil:
		return "due " + t.Deadline.String()
	}
	return ""
}

// Events prints dated events; deadlines are highlighted.
func (pp *PrettyPrint) Events(events ...entry.Event) {
	if len(events) == 0 {
		return
	}
	red := color.New(color.FgRed, color.Bold)
	for _, e := range events {
		pp.id(e.ID)
		m := glyph.ForEvent(e)
		if m == glyph.Deadline {
			_, _ = red.Fprintf(pp.out(), "%s %s\n", m, e.Title)
			continue
		}
		_, _ = fmt.Fprintf(pp.out(), "%s %s\n", m, e.Title)
	}
}

// Day prints the agenda for one day.
func (pp *PrettyPrint) Day(d timeutil.Day, tasks []entry.Task, events []entry.Event) {
	title := fmt.Sprintf("%s %s", d.Weekday(), d)
	if name := calendar.HolidayName(d); name != "" {
		title += " · " + name
	}
	pp.TitleWithCount(title, len(tasks)+len(events))
	pp.Events(events...)
	pp.Tasks(tasks...)
}

// Week prints every cell of w as a day agenda.
func (pp *PrettyPrint) Week(w calendar.Week) {
	for _, c := range w.Cells {
		pp.Day(c.Day, c.Tasks, c.Events)
	}
}

// Presets prints routine presets as a table.
func (pp *PrettyPrint) Presets(presets ...entry.Preset) {
	if len(presets) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	header := []interface{}{bold("Name"), bold("Title"), bold("Progress")}
	if pp.ShowID {
		header = append([]interface{}{bold("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, p := range presets {
		row := []interface{}{p.Name, p.DefaultTitle, p.DefaultProgress}
		if pp.ShowID {
			row = append([]interface{}{p.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Notes prints management notes as a table.
func (pp *PrettyPrint) Notes(notes ...entry.Note) {
	if len(notes) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	header := []interface{}{bold("Date"), bold("Title"), bold("Content")}
	if pp.ShowID {
		header = append([]interface{}{bold("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, n := range notes {
		row := []interface{}{n.Date, n.Title, n.Content}
		if pp.ShowID {
			row = append([]interface{}{n.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Bookmarks prints the forest depth-first with folders in bold.
func (pp *PrettyPrint) Bookmarks(t *bookmark.Tree) {
	branches := t.Branches()
	if len(branches) == 0 {
		pp.none()
		return
	}
	folder := color.New(color.Bold, color.FgBlue)
	link := color.New(color.Faint)
	bookmark.Walk(branches, func(b *bookmark.Branch) {
		pp.id(b.ID)
		indent := strings.Repeat("  ", b.Depth)
		if b.IsFolder {
			_, _ = folder.Fprintf(pp.out(), "%s%s %s\n", indent, glyph.Folder, b.Name)
			return
		}
		_, _ = fmt.Fprintf(pp.out(), "%s%s %s ", indent, glyph.Link, b.Name)
		_, _ = link.Fprintln(pp.out(), b.URL)
	})
	pp.NewLine()
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}
