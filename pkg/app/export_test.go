package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/store"
)

func exportFixture(t *testing.T) *Service {
	t.Helper()
	s := newService(t, store.Snapshot{})
	inputs := []TaskInput{
		{Title: "Late task", Anchor: day("2024-06-07"), Progress: "done", Category: entry.CategoryManagement},
		{Title: "Standup", Anchor: day("2024-06-03"), IsRoutine: true, Category: entry.CategoryRoutine},
		{Title: "Write report", Anchor: day("2024-06-03"), Deadline: day("2024-06-05").Ptr(), Reflection: "too long"},
		{Title: "Out of range", Anchor: day("2024-05-30")},
	}
	for _, in := range inputs {
		if _, err := s.AddTask(in); err != nil {
			t.Fatalf("add %q: %v", in.Title, err)
		}
	}
	return s
}

func TestExportTextOrderAndFilters(t *testing.T) {
	s := exportFixture(t)
	var buf bytes.Buffer
	err := s.Export(&buf, ExportOptions{From: day("2024-06-01"), Until: day("2024-06-30")})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := strings.Join([]string{
		"[2024-06-03] Standup",
		"  Category: Routine",
		"  Routine task",
		"",
		"[2024-06-03] Write report",
		"  Reflection: too long",
		"  Deadline: 2024-06-05",
		"  Category: General",
		"",
		"[2024-06-07] Late task",
		"  Progress: done",
		"  Category: Management",
		"",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected export:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestExportTitlesOnlyWithoutRoutine(t *testing.T) {
	s := exportFixture(t)
	var buf bytes.Buffer
	err := s.Export(&buf, ExportOptions{ExcludeRoutine: true, TitlesOnly: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := "[2024-05-30] Out of range\n\n[2024-06-03] Write report\n\n[2024-06-07] Late task\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected export:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestExportTextWrapsLongBodies(t *testing.T) {
	task := entry.Task{
		Title:    "Wrap",
		Anchor:   day("2024-06-03"),
		Progress: strings.Repeat("word ", 12),
		Category: entry.CategoryGeneral,
	}
	out := ExportText([]entry.Task{task}, ExportOptions{Width: 24})
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 24 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if !strings.Contains(out, "  Progress: word word") {
		t.Fatalf("body missing: %q", out)
	}
}

func TestExportICS(t *testing.T) {
	s := exportFixture(t)
	if _, err := s.AddEvent(EventInput{Date: day("2024-06-04"), Title: "Release", IsDeadline: true}); err != nil {
		t.Fatalf("add event: %v", err)
	}
	var buf bytes.Buffer
	if err := s.Export(&buf, ExportOptions{Format: FormatICS, From: day("2024-06-01")}); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:Write report", "SUMMARY:Release", "20240603"} {
		if !strings.Contains(out, want) {
			t.Fatalf("ics missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Out of range") {
		t.Fatalf("filtered task leaked into ics:\n%s", out)
	}
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 4 {
		t.Fatalf("expected 4 events, got %d", n)
	}
}

func TestExportYAML(t *testing.T) {
	s := exportFixture(t)
	var buf bytes.Buffer
	if err := s.Export(&buf, ExportOptions{Format: FormatYAML, ExcludeRoutine: true}); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"tasks:", "title: Write report", "2024-06-05", "category: Management"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Standup") {
		t.Fatalf("routine task leaked:\n%s", out)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	s := exportFixture(t)
	if err := s.Export(&bytes.Buffer{}, ExportOptions{Format: "pdf"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
