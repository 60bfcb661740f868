package app

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"gopkg.in/yaml.v3"

	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/timeutil"
)

// Export formats.
const (
	FormatText = "text"
	FormatICS  = "ics"
	FormatYAML = "yaml"
)

// ExportOptions selects and shapes exported task records.
type ExportOptions struct {
	// From and Until bound the anchor day, inclusive. Zero means open.
	From  timeutil.Day
	Until timeutil.Day
	// ExcludeRoutine drops routine tasks.
	ExcludeRoutine bool
	// TitlesOnly prints only the dated title line of each task.
	TitlesOnly bool
	Format     string
	// Width wraps text bodies; zero means 80 columns.
	Width int
}

// ExportTasks returns the tasks selected by opts ordered by anchor day.
// Tasks sharing a day keep their insertion order.
func (s *Service) ExportTasks(opts ExportOptions) []entry.Task {
	s.mu.Lock()
	all := s.tasks.All()
	s.mu.Unlock()

	out := make([]entry.Task, 0, len(all))
	for _, t := range all {
		if !opts.From.IsZero() && t.Anchor.Before(opts.From) {
			continue
		}
		if !opts.Until.IsZero() && t.Anchor.After(opts.Until) {
			continue
		}
		if opts.ExcludeRoutine && t.IsRoutine {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Anchor.Before(out[j].Anchor) })
	return out
}

// Export writes the selected tasks to w in opts.Format.
func (s *Service) Export(w io.Writer, opts ExportOptions) error {
	tasks := s.ExportTasks(opts)
	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		_, err := io.WriteString(w, ExportText(tasks, opts))
		return err
	case FormatICS:
		_, err := io.WriteString(w, s.exportICS(tasks, opts))
		return err
	case FormatYAML:
		return exportYAML(w, tasks, opts)
	default:
		return invalid("unknown export format %q", opts.Format)
	}
}

// ExportText renders tasks as a plain report: a "[day] title" line per
// task, its details indented below, and a blank line after each task.
func ExportText(tasks []entry.Task, opts ExportOptions) string {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&b, "[%s] %s\n", t.Anchor, t.Title)
		if !opts.TitlesOnly {
			var body []string
			if t.Progress != "" {
				body = append(body, "Progress: "+t.Progress)
			}
			if t.Reflection != "" {
				body = append(body, "Reflection: "+t.Reflection)
			}
			if t.Deadline != nil {
				body = append(body, "Deadline: "+t.Deadline.String())
			}
			body = append(body, "Category: "+string(t.Category))
			if t.IsRoutine {
				body = append(body, "Routine task")
			}
			for _, line := range body {
				b.WriteString(indent.String(wordwrap.String(line, width-2), 2))
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *Service) exportICS(tasks []entry.Task, opts ExportOptions) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//tableflip.dev//worklog//EN")

	for _, t := range tasks {
		ev := cal.AddEvent(t.ID + "@worklog")
		ev.SetDtStampTime(t.UpdatedAt.Time)
		ev.SetCreatedTime(t.CreatedAt.Time)
		ev.SetModifiedAt(t.UpdatedAt.Time)
		start, end := t.Anchor, t.Anchor
		if t.StartDate != nil && t.Deadline != nil && !t.Deadline.Before(*t.StartDate) {
			start, end = *t.StartDate, *t.Deadline
		}
		ev.SetAllDayStartAt(start.In(time.UTC))
		// DTEND is exclusive for all-day events.
		ev.SetAllDayEndAt(end.AddDays(1).In(time.UTC))
		ev.SetSummary(t.Title)
		if !opts.TitlesOnly && t.Progress != "" {
			ev.SetDescription(t.Progress)
		}
		ev.AddProperty(ical.ComponentPropertyCategories, string(t.Category))
	}

	s.mu.Lock()
	events := s.events.All()
	s.mu.Unlock()
	for _, e := range events {
		if !opts.From.IsZero() && e.Date.Before(opts.From) {
			continue
		}
		if !opts.Until.IsZero() && e.Date.After(opts.Until) {
			continue
		}
		ev := cal.AddEvent(e.ID + "@worklog")
		ev.SetDtStampTime(e.UpdatedAt.Time)
		ev.SetAllDayStartAt(e.Date.In(time.UTC))
		ev.SetAllDayEndAt(e.Date.AddDays(1).In(time.UTC))
		ev.SetSummary(e.Title)
		if e.IsDeadline {
			ev.AddProperty(ical.ComponentPropertyCategories, "Deadline")
		}
	}
	return cal.Serialize()
}

type yamlExport struct {
	From  string       `yaml:"from,omitempty"`
	Until string       `yaml:"until,omitempty"`
	Tasks []entry.Task `yaml:"tasks"`
}

func exportYAML(w io.Writer, tasks []entry.Task, opts ExportOptions) error {
	doc := yamlExport{From: opts.From.String(), Until: opts.Until.String(), Tasks: tasks}
	if opts.TitlesOnly {
		doc.Tasks = make([]entry.Task, len(tasks))
		for i, t := range tasks {
			doc.Tasks[i] = entry.Task{Meta: t.Meta, Title: t.Title, Anchor: t.Anchor, Category: t.Category, IsRoutine: t.IsRoutine}
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("app: encode yaml: %w", err)
	}
	return enc.Close()
}
